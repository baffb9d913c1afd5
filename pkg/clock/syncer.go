package clock

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/taoky/httpclock/pkg/httpdate"
	"github.com/taoky/httpclock/pkg/sysclock"
)

type Fetcher interface {
	Fetch(ctx context.Context) (httpdate.Result, error)
}

type HostStats struct {
	Attempts  uint64
	Successes uint64
	Failures  uint64

	LastSync time.Time
	// Local clock minus server time at LastSync
	LastSkew time.Duration

	LastError   string
	LastErrorAt time.Time
}

func (h HostStats) UpdateWith(res httpdate.Result, err error, now time.Time) HostStats {
	h.Attempts++
	if err != nil {
		h.Failures++
		h.LastError = err.Error()
		h.LastErrorAt = now
		return h
	}
	h.Successes++
	h.LastSync = now
	h.LastSkew = sysclock.Skew(res.Record.UTC(), now)
	return h
}

type SyncerConfig struct {
	Interval  time.Duration
	SetClock  bool
	LogOutput string
	LogLevel  string
}

func (c *SyncerConfig) InstallFlags(flags *pflag.FlagSet) {
	flags.DurationVarP(&c.Interval, "interval", "i", c.Interval, "Time between synchronizations")
	flags.BoolVar(&c.SetClock, "set-clock", c.SetClock, "Set the system clock after each successful fetch (needs root)")
	flags.StringVarP(&c.LogOutput, "outlog", "o", c.LogOutput, "Change log output file")
	flags.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level (debug|info|warn|error)")
}

func DefaultConfig() SyncerConfig {
	return SyncerConfig{
		Interval: 5 * time.Minute,
		LogLevel: "info",
	}
}

type Syncer struct {
	Config SyncerConfig

	// OnSync is called after every successful sync.
	OnSync func(httpdate.Result)

	fetcher Fetcher
	syncMu  sync.Mutex

	// host -> HostStats
	stats           map[string]HostStats
	connectFailures uint64
	last            httpdate.Result
	hasLast         bool
	mu              sync.Mutex

	logger   *logrus.Logger
	now      func() time.Time
	setClock func(t time.Time, readAt time.Time) error
}

func NewSyncer(c SyncerConfig, f Fetcher) (*Syncer, error) {
	if c.Interval <= 0 {
		return nil, fmt.Errorf("invalid interval %s", c.Interval)
	}
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	s := &Syncer{
		Config:   c,
		fetcher:  f,
		stats:    make(map[string]HostStats),
		logger:   logger,
		now:      time.Now,
		setClock: sysclock.Set,
	}
	if err := s.OpenLogFile(); err != nil {
		return nil, fmt.Errorf("open log file error: %w", err)
	}
	return s, nil
}

func (s *Syncer) Logger() *logrus.Logger {
	return s.logger
}

// SetFetcher replaces the fetcher used from the next sync on, e.g. after the
// host list was reloaded.
func (s *Syncer) SetFetcher(f Fetcher) {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()
	s.fetcher = f
}

// SyncOnce runs a single fetch. Concurrent calls are serialized.
func (s *Syncer) SyncOnce(ctx context.Context) (httpdate.Result, error) {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()

	res, err := s.fetcher.Fetch(ctx)
	now := s.now()

	s.mu.Lock()
	if errors.Is(err, httpdate.ErrConnect) {
		s.connectFailures++
	} else {
		s.stats[res.Host] = s.stats[res.Host].UpdateWith(res, err, now)
	}
	if err == nil {
		s.last = res
		s.hasLast = true
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.WithError(err).Warn("time sync failed")
		return res, err
	}

	rec := res.Record
	s.logger.WithFields(logrus.Fields{
		"host":    res.Host,
		"utc":     rec.UTC().Format(time.RFC3339),
		"local":   rec.Local().Format(time.DateTime),
		"skew":    sysclock.Skew(rec.UTC(), now).String(),
		"elapsed": res.Elapsed.String(),
	}).Info("time synced")

	if s.Config.SetClock {
		if err := s.setClock(rec.UTC(), now); err != nil {
			s.logger.WithError(err).Error("failed to set system clock")
			return res, err
		}
		s.logger.Debug("system clock set")
	}
	if s.OnSync != nil {
		s.OnSync(res)
	}
	return res, nil
}

// Run syncs immediately and then every Config.Interval until ctx is done.
// Failed syncs are retried at the next tick.
func (s *Syncer) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.Config.Interval)
	defer ticker.Stop()
	for {
		s.SyncOnce(ctx)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Last returns the most recent successful result.
func (s *Syncer) Last() (httpdate.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.hasLast
}

func (s *Syncer) ConnectFailures() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connectFailures
}

func (s *Syncer) Stats() map[string]HostStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make(map[string]HostStats, len(s.stats))
	for k, v := range s.stats {
		res[k] = v
	}
	return res
}

// SortedHosts returns hosts with stats, most successful first.
func (s *Syncer) SortedHosts() []string {
	stats := s.Stats()
	hosts := make([]string, 0, len(stats))
	for h := range stats {
		hosts = append(hosts, h)
	}
	slices.SortFunc(hosts, func(l, r string) int {
		if c := cmp.Compare(stats[r].Successes, stats[l].Successes); c != 0 {
			return c
		}
		return strings.Compare(l, r)
	})
	return hosts
}

// OpenLogFile (re)opens Config.LogOutput, so it can follow log rotation.
func (s *Syncer) OpenLogFile() error {
	if s.Config.LogOutput == "" {
		s.logger.SetOutput(os.Stderr)
		return nil
	}

	logFile, err := os.OpenFile(s.Config.LogOutput, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	s.logger.SetOutput(logFile)
	return nil
}
