package geoip

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/2beens/fitplan/internal/telemetry/tracing"
	"github.com/2beens/fitplan/pkg"

	"github.com/go-redis/redis/v8"
	"github.com/ipinfo/go/v2/ipinfo"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const cacheTTL = 7 * 24 * time.Hour

// IPInfoClient is the part of *ipinfo.Client the resolver needs.
type IPInfoClient interface {
	GetIPInfo(ip net.IP) (*ipinfo.Core, error)
}

func NewIPInfoClient(token string, httpClient *http.Client) *ipinfo.Client {
	return ipinfo.NewClient(httpClient, nil, token)
}

// TimezoneResolver maps a request's client IP to its IANA timezone.
// Lookups are cached in redis under "ip-tz::<ip>".
type TimezoneResolver struct {
	mu              sync.Mutex
	ipInfo          IPInfoClient
	redisClient     *redis.Client
	defaultLocation *time.Location
}

// NewTimezoneResolver creates a resolver. Both ipInfo and redisClient may be nil,
// in which case the default location is used or caching is skipped.
func NewTimezoneResolver(ipInfo IPInfoClient, redisClient *redis.Client, defaultLocation *time.Location) *TimezoneResolver {
	if defaultLocation == nil {
		defaultLocation = time.UTC
	}
	return &TimezoneResolver{
		ipInfo:          ipInfo,
		redisClient:     redisClient,
		defaultLocation: defaultLocation,
	}
}

func (tr *TimezoneResolver) DefaultLocation() *time.Location {
	return tr.defaultLocation
}

// LocationFor never fails: any lookup problem falls back to the default location.
func (tr *TimezoneResolver) LocationFor(ctx context.Context, r *http.Request) *time.Location {
	ctx, span := tracing.GlobalTracer.Start(ctx, "geoip.locationFor")
	defer span.End()

	userIP, err := pkg.ReadUserIP(r)
	if err != nil {
		log.Debugf("timezone resolver, read user ip: %s", err)
		return tr.defaultLocation
	}
	// local development request
	if userIP == nil {
		return tr.defaultLocation
	}
	span.SetAttributes(attribute.String("user.ip", userIP.String()))

	loc, err := tr.lookup(ctx, userIP)
	if err != nil {
		log.Errorf("timezone resolver, lookup [%s]: %s", userIP, err)
		return tr.defaultLocation
	}
	return loc
}

func (tr *TimezoneResolver) lookup(ctx context.Context, ip net.IP) (*time.Location, error) {
	cacheKey := fmt.Sprintf("ip-tz::%s", ip)

	if tr.redisClient != nil {
		tz, err := tr.redisClient.Get(ctx, cacheKey).Result()
		switch {
		case err == nil:
			if loc, err := time.LoadLocation(tz); err == nil {
				log.Tracef("found timezone for [%s] in redis cache", ip)
				return loc, nil
			}
			log.Errorf("cached timezone [%s] for [%s] is invalid", tz, ip)
		case !errors.Is(err, redis.Nil):
			log.Errorf("failed to get timezone from redis for [%s]: %s", cacheKey, err)
		}
	}

	if tr.ipInfo == nil {
		return tr.defaultLocation, nil
	}

	// ipinfo free plan has a monthly quota, concurrent requests from one client should cost one call
	tr.mu.Lock()
	defer tr.mu.Unlock()

	core, err := tr.ipInfo.GetIPInfo(ip)
	if err != nil {
		return nil, fmt.Errorf("ipinfo: %w", err)
	}
	if core == nil || core.Timezone == "" {
		return nil, errors.New("ipinfo: no timezone")
	}
	loc, err := time.LoadLocation(core.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load location %q: %w", core.Timezone, err)
	}

	if tr.redisClient != nil {
		if err := tr.redisClient.Set(ctx, cacheKey, core.Timezone, cacheTTL).Err(); err != nil {
			log.Errorf("failed to cache timezone in redis for %s: %s", ip, err)
		}
	}

	return loc, nil
}
