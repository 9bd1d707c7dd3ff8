package tzsync

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/t0sync/internal/registry"
)

// FacilityResolver maps facility ids to timezone metadata.
// *registry.Registry implements it.
type FacilityResolver interface {
	Lookup(facilityID string) (registry.Entry, error)
}

// Engine converts facility-local timestamps to canonical UTC records.
//
// Thread-safety: Engine is immutable after New and safe for concurrent use.
type Engine struct {
	facilities FacilityResolver
	zones      ZoneProvider
	workers    int
}

// Option configures an Engine.
type Option func(*Engine)

// WithZoneProvider replaces the default SystemZones provider.
func WithZoneProvider(p ZoneProvider) Option {
	return func(e *Engine) {
		e.zones = p
	}
}

// WithWorkers bounds the concurrency of SynchronizeAll.
// Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// New creates an engine resolving facilities through facilities.
func New(facilities FacilityResolver, opts ...Option) *Engine {
	e := &Engine{
		facilities: facilities,
		zones:      SystemZones{},
		workers:    runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Synchronize converts localTimestamp, recorded at facilityID, to UTC.
//
// It never panics and never returns an error: every failure, including a
// recovered panic, is reported through the returned record's Status and
// StatusDetail. Identical inputs always produce identical records.
func (e *Engine) Synchronize(facilityID, localTimestamp string) (rec Record) {
	rec = Record{
		FacilityID:        facilityID,
		LocalTimestampRaw: localTimestamp,
		ResolvedZone:      UnresolvedZone,
	}

	defer func() {
		if r := recover(); r != nil {
			rec = fail(rec, StatusInternalError, fmt.Sprintf("internal error: %v", r))
		}
	}()

	return e.synchronize(&rec)
}

// synchronize advances rec through the state machine. rec is updated in
// place so a recovered panic still reports the zone resolved so far.
func (e *Engine) synchronize(rec *Record) Record {
	// START -> ZONE_RESOLVED
	entry, err := e.facilities.Lookup(rec.FacilityID)
	if err != nil {
		if registry.IsUnknownFacility(err) {
			return fail(*rec, StatusUnknownFacility, err.Error())
		}
		return fail(*rec, StatusInternalError, fmt.Sprintf("facility lookup %q: %v", rec.FacilityID, err))
	}
	rec.ResolvedZone = entry.Zone

	// ZONE_RESOLVED -> PARSED
	wall, err := ParseLocal(rec.LocalTimestampRaw)
	if err != nil {
		return fail(*rec, StatusParseFailed, err.Error())
	}

	loc, err := e.zones.Load(entry.Zone)
	if err != nil {
		return fail(*rec, StatusInternalError, fmt.Sprintf("load zone rules for %q: %v", entry.Zone, err))
	}
	if loc == nil {
		return fail(*rec, StatusInternalError, fmt.Sprintf("load zone rules for %q: provider returned no location", entry.Zone))
	}

	// PARSED -> LOCALIZED
	local, err := Localize(loc, wall)
	if err != nil {
		var gap *GapError
		if errors.As(err, &gap) {
			return fail(*rec, StatusInvalidLocalTime, gap.Error())
		}
		return fail(*rec, StatusInternalError, fmt.Sprintf("localize: %v", err))
	}

	// LOCALIZED -> CONVERTED -> SUCCESS
	rec.CanonicalUTC = local.Instant.UTC().Format(Layout)
	rec.LocalizedTimestamp = local.Instant.Format(LocalizedLayout)
	rec.UTCOffset = FormatOffset(local.Offset)
	rec.OffsetSeconds = local.Offset
	rec.ZoneAbbreviation = local.Abbreviation
	rec.DST = local.DST
	rec.Status = StatusSuccess

	if local.Folded {
		laterAbbr, laterOff := local.Later.Zone()
		rec.Disambiguated = true
		rec.StatusDetail = fmt.Sprintf(
			"ambiguous local time %s occurs twice in %s; selected first occurrence UTC%s (%s) over UTC%s (%s)",
			wall.Format(Layout), entry.Zone,
			FormatOffset(local.Offset), local.Abbreviation,
			FormatOffset(laterOff), laterAbbr,
		)
	}

	return seal(*rec)
}

// Request is one input to SynchronizeAll.
type Request struct {
	FacilityID     string `json:"facility_id" yaml:"facility_id"`
	LocalTimestamp string `json:"local_timestamp" yaml:"local_timestamp"`
}

// SynchronizeAll synchronizes reqs concurrently, bounded by the engine's
// worker limit. Records are returned in input order.
//
// The only error is ctx's, when it is cancelled before every request has
// been processed; per-request failures are records.
func (e *Engine) SynchronizeAll(ctx context.Context, reqs []Request) ([]Record, error) {
	records := make([]Record, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, req := range reqs {
		i, req := i, req // per-iteration copies (go directive < 1.22)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			records[i] = e.Synchronize(req.FacilityID, req.LocalTimestamp)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}
