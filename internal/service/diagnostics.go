package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/forgo/chapel/internal/model"
)

// Diagnostics status strings
const (
	StatusRunning            = "Running"
	StatusNotAvailable       = "Not Available"
	StatusNotInitialized     = "Available but not initialized"
	StatusConnectedWorking   = "Connected & Working"
	StatusConnected          = "Connected"
	StatusNotConnected       = "Not Connected"
	StatusSet                = "Set"
	StatusNotSet             = "Not Set"
	statusUnreachablePrefix  = "Unreachable: "
	statusConnectedErrPrefix = "Connected but Error: "
	statusErrorPrefix        = "Error: "
)

// StoreInspector is the read-only view of a store used for diagnostics
type StoreInspector interface {
	Ping(ctx context.Context) error
	Collections(ctx context.Context) ([]string, error)
	Name() string
}

// DiagnosticsServiceConfig holds dependencies for DiagnosticsService
type DiagnosticsServiceConfig struct {
	Store     StoreInspector
	Backend   string
	URLIsSet  bool
	NameIsSet bool
	Logger    *slog.Logger
}

// DiagnosticsService reports store reachability and metadata
type DiagnosticsService struct {
	store     StoreInspector
	backend   string
	urlIsSet  bool
	nameIsSet bool
	logger    *slog.Logger
}

// NewDiagnosticsService creates a new diagnostics service
func NewDiagnosticsService(cfg DiagnosticsServiceConfig) *DiagnosticsService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &DiagnosticsService{
		store:     cfg.Store,
		backend:   cfg.Backend,
		urlIsSet:  cfg.URLIsSet,
		nameIsSet: cfg.NameIsSet,
		logger:    logger,
	}
}

// Report inspects the store. It never fails: every error, including a panic
// inside the store, is folded into a degraded status string.
func (s *DiagnosticsService) Report(ctx context.Context) (report *model.Diagnostics) {
	report = &model.Diagnostics{
		Backend:          StatusRunning,
		Database:         StatusNotAvailable,
		DatabaseURL:      setStatus(s.urlIsSet),
		DatabaseName:     StatusNotSet,
		ConnectionStatus: StatusNotConnected,
		Collections:      []string{},
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "diagnostics panic", slog.Any("panic", r))
			report.Database = statusErrorPrefix + truncateStatus(fmt.Sprint(r))
		}
	}()

	if s.store == nil {
		report.Database = StatusNotInitialized
		return report
	}

	if s.nameIsSet {
		report.DatabaseName = s.store.Name()
	}

	if err := s.store.Ping(ctx); err != nil {
		s.logger.WarnContext(ctx, "diagnostics ping failed",
			slog.String("backend", s.backend),
			slog.String("error", err.Error()),
		)
		report.Database = statusUnreachablePrefix + truncateStatus(err.Error())
		return report
	}
	report.ConnectionStatus = StatusConnected

	collections, err := s.store.Collections(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "diagnostics collection listing failed",
			slog.String("backend", s.backend),
			slog.String("error", err.Error()),
		)
		report.Database = statusConnectedErrPrefix + truncateStatus(err.Error())
		return report
	}

	if len(collections) > model.MaxDiagnosticCollections {
		collections = collections[:model.MaxDiagnosticCollections]
	}
	report.Collections = append(report.Collections, collections...)
	report.Database = StatusConnectedWorking
	return report
}

func setStatus(set bool) string {
	if set {
		return StatusSet
	}
	return StatusNotSet
}

func truncateStatus(msg string) string {
	return model.Truncate(msg, model.MaxDiagnosticErrorLength)
}
