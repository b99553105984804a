// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package upstream

import (
	"context"
	"sync"
	"time"

	"github.com/danielhkuo/callcampaign/models"
)

// DistrictFetcher is the part of Client the directory cache depends on.
type DistrictFetcher interface {
	FetchDistricts(ctx context.Context) ([]models.District, error)
}

// Directory caches the district list for ttl. Failed fetches are not cached.
type Directory struct {
	fetcher DistrictFetcher
	ttl     time.Duration
	now     func() time.Time

	mu        sync.Mutex
	districts []models.District
	fetchedAt time.Time
}

func NewDirectory(fetcher DistrictFetcher, ttl time.Duration) *Directory {
	return &Directory{fetcher: fetcher, ttl: ttl, now: time.Now}
}

// Districts returns the cached directory, refreshing it once it is older than
// the ttl. Callers must not modify the returned slice.
func (d *Directory) Districts(ctx context.Context) ([]models.District, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.districts != nil && d.now().Sub(d.fetchedAt) < d.ttl {
		return d.districts, nil
	}

	districts, err := d.fetcher.FetchDistricts(ctx)
	if err != nil {
		return nil, err
	}
	d.districts = districts
	d.fetchedAt = d.now()
	return districts, nil
}
