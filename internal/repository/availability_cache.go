package repository

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/PawsProtect/service-welfare/internal/domain/veterinary"
)

type availabilityKey struct {
	clinicID string
	today    veterinary.CalendarDate
}

type availabilityEntry struct {
	table *veterinary.ClinicAvailability
	ok    bool
}

// CachedAvailabilityProvider memoizes materialized clinic tables per
// (clinic, day). Tables built from relative templates change at midnight, so
// the day is part of the key.
type CachedAvailabilityProvider struct {
	source veterinary.AvailabilityProvider
	cache  *lru.Cache[availabilityKey, availabilityEntry]
	logger *zap.Logger
}

// NewCachedAvailabilityProvider wraps source with an LRU of the given size.
func NewCachedAvailabilityProvider(source veterinary.AvailabilityProvider, size int, logger *zap.Logger) (*CachedAvailabilityProvider, error) {
	cache, err := lru.New[availabilityKey, availabilityEntry](size)
	if err != nil {
		return nil, err
	}
	return &CachedAvailabilityProvider{source: source, cache: cache, logger: logger}, nil
}

// Availability implements veterinary.AvailabilityProvider.
func (p *CachedAvailabilityProvider) Availability(clinicID string, today veterinary.CalendarDate) (*veterinary.ClinicAvailability, bool) {
	key := availabilityKey{clinicID: clinicID, today: today}
	if e, hit := p.cache.Get(key); hit {
		return e.table, e.ok
	}
	table, ok := p.source.Availability(clinicID, today)
	if !ok {
		p.logger.Debug("no availability table", zap.String("clinic_id", clinicID), zap.Stringer("today", today))
	}
	p.cache.Add(key, availabilityEntry{table: table, ok: ok})
	return table, ok
}
