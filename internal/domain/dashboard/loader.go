package dashboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/carelink/portal/internal/domain/analysis"
	"github.com/carelink/portal/internal/domain/appointment"
	"github.com/carelink/portal/internal/domain/identity"
)

// AppointmentSource yields the full appointment collection; the loader
// narrows it to one patient per cycle.
type AppointmentSource interface {
	ListAll(ctx context.Context) ([]*appointment.Record, error)
}

// TrendSource yields month-bucketed appointment volume for one patient.
type TrendSource interface {
	Trends(ctx context.Context, ownerID string, months int) ([]appointment.Trend, error)
}

// AnalysisSource yields a patient's AI analyses.
type AnalysisSource interface {
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*analysis.Analysis, int, error)
}

// Sources bundles the collaborators one dashboard cycle fetches from.
type Sources struct {
	Appointments AppointmentSource
	Trends       TrendSource
	Analyses     AnalysisSource
}

// Stats is derived wholesale from a cycle's results and is never patched
// incrementally.
type Stats struct {
	MyAppointments       int `json:"myAppointments"`
	UpcomingAppointments int `json:"upcomingAppointments"`
	MyAnalyses           int `json:"myAnalyses"`
	MyReports            int `json:"myReports"`
}

// Snapshot is the committed result of one load cycle. Either Err is set or
// the data fields are, never both.
type Snapshot struct {
	PatientID    string                `json:"patientId"`
	Appointments []*appointment.Record `json:"appointments"`
	Stats        Stats                 `json:"stats"`
	Trends       []appointment.Trend   `json:"trends"`
	Analyses     []*analysis.Analysis  `json:"analyses"`
	Err          error                 `json:"-"`
}

const trendMonths = 6

// analysisFetchLimit bounds one cycle's analysis fetch; the stats still use
// the repository's total.
const analysisFetchLimit = 200

// Load runs one full fetch cycle for ownerID. The appointment fetch is
// primary: its failure fails the cycle. Trend and analysis failures degrade
// to empty results so a flaky collaborator cannot blank the whole view.
func (s Sources) Load(ctx context.Context, ownerID string, logger zerolog.Logger) Snapshot {
	snap := Snapshot{
		PatientID:    ownerID,
		Appointments: []*appointment.Record{},
		Trends:       []appointment.Trend{},
		Analyses:     []*analysis.Analysis{},
	}
	if ownerID == "" {
		return snap
	}

	var (
		wg sync.WaitGroup

		all     []*appointment.Record
		apptErr error

		trends   []appointment.Trend
		trendErr error

		analyses    []*analysis.Analysis
		totalCount  int
		analysisErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		all, apptErr = s.Appointments.ListAll(ctx)
	}()
	if s.Trends != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			trends, trendErr = s.Trends.Trends(ctx, ownerID, trendMonths)
		}()
	}
	if s.Analyses != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			analyses, totalCount, analysisErr = s.Analyses.ListByOwner(ctx, ownerID, analysisFetchLimit, 0)
		}()
	}
	wg.Wait()

	if apptErr != nil {
		logger.Error().Str("op", "appointments").Msg("dashboard fetch failed")
		snap.Err = fmt.Errorf("load appointments: %w", apptErr)
		return snap
	}
	if trendErr != nil {
		logger.Warn().Str("op", "trends").Msg("dashboard fetch degraded")
		trends = nil
	}
	if analysisErr != nil {
		logger.Warn().Str("op", "analyses").Msg("dashboard fetch degraded")
		analyses, totalCount = nil, 0
	}

	sel := appointment.SelectForPatient(all, ownerID)
	snap.Appointments = sel.Appointments
	if trends != nil {
		snap.Trends = trends
	}
	if analyses != nil {
		snap.Analyses = analyses
	}

	reports := 0
	for _, a := range snap.Analyses {
		if a.HasReport() {
			reports++
		}
	}
	snap.Stats = Stats{
		MyAppointments:       len(sel.Appointments),
		UpcomingAppointments: sel.UpcomingCount,
		MyAnalyses:           totalCount,
		MyReports:            reports,
	}
	return snap
}

// Loader runs load cycles for one viewer session and keeps the latest
// committed snapshot. A generation counter guards commits: any cycle whose
// generation is no longer current at commit time is discarded, so a stale
// fetch can never clobber a newer one.
type Loader struct {
	sources Sources
	logger  zerolog.Logger

	mu     sync.Mutex
	gen    uint64
	userID string
	snap   Snapshot
	closed bool
}

func NewLoader(sources Sources, logger zerolog.Logger) *Loader {
	return &Loader{
		sources: sources,
		logger:  logger,
		snap: Snapshot{
			Appointments: []*appointment.Record{},
			Trends:       []appointment.Trend{},
			Analyses:     []*analysis.Analysis{},
		},
	}
}

// SetUser switches the loader to u and reloads, but only when the resolved
// id actually changes. Re-setting the same user is a no-op so unrelated
// auth refreshes do not trigger spurious cycles.
func (l *Loader) SetUser(ctx context.Context, u *identity.User) {
	id := identity.ResolveUserID(u)

	l.mu.Lock()
	if l.closed || id == l.userID {
		l.mu.Unlock()
		return
	}
	l.userID = id
	l.mu.Unlock()

	l.Reload(ctx)
}

// Reload runs one cycle for the current user and commits the resulting
// snapshot if no newer cycle has started since.
func (l *Loader) Reload(ctx context.Context) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.gen++
	myGen := l.gen
	owner := l.userID
	l.mu.Unlock()

	snap := l.sources.Load(ctx, owner, l.logger)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || l.gen != myGen {
		// A newer cycle owns the view now.
		return
	}
	l.snap = snap
}

// Snapshot returns the latest committed snapshot.
func (l *Loader) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snap
}

// Close invalidates any in-flight cycle; its results are discarded when it
// finishes.
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	l.gen++
}
