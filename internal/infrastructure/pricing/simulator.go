package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"cotizador_seguros/internal/domain/entities"
	"cotizador_seguros/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	simulatorSource = "market simulator"
	currency        = "ARS"
	sumInsuredText  = "$ 15.000.000"
	statusSuccess   = "SUCCESS"
)

// ErrInjectedFailure is returned when failure injection fires. It is
// transient: retrying may succeed.
var ErrInjectedFailure = errors.New("market simulator: upstream timeout")

type insurer struct {
	name   string
	factor decimal.Decimal
}

type plan struct {
	code     string
	grade    entities.CoverageGrade
	base     decimal.Decimal
	features []string
}

var insurers = []insurer{
	{"Triunfo Seguros", decimal.RequireFromString("1.00")},
	{"Sancor Seguros", decimal.RequireFromString("1.35")},
	{"Rivadavia", decimal.RequireFromString("1.15")},
	{"Mercantil Andina", decimal.RequireFromString("1.10")},
	{"Zurich", decimal.RequireFromString("1.60")},
}

var plans = []plan{
	{"A", entities.GradeLiability, decimal.NewFromInt(12000), []string{"Responsabilidad Civil"}},
	{"B1", entities.GradeBasic, decimal.NewFromInt(18000), []string{"Responsabilidad Civil", "Robo Total", "Incendio Total"}},
	{"B", entities.GradeBasic, decimal.NewFromInt(24000), []string{"RC", "Robo Total/Parcial", "Incendio Total/Parcial"}},
	{"C", entities.GradeThirdPartyComplete, decimal.NewFromInt(32000), []string{"RC", "Robo Total/Parcial", "Incendio Total/Parcial", "Destrucción Total"}},
	{"C8", entities.GradeThirdPartyComplete, decimal.NewFromInt(38000), []string{"RC", "Robo Total/Parcial", "Incendio Total/Parcial", "Destrucción Total", "Granizo", "Cristales"}},
	{"Cfull", entities.GradeThirdPartyComplete, decimal.NewFromInt(45000), []string{"RC", "Robo Total/Parcial", "Incendio Total/Parcial", "Destrucción Total", "Granizo Ilimitado", "Cristales", "Cerraduras", "Ruedas"}},
	{"D1", entities.GradeAllRisk, decimal.NewFromInt(65000), []string{"Todo Riesgo", "Franquicia $800.000"}},
	{"D2", entities.GradeAllRisk, decimal.NewFromInt(95000), []string{"Todo Riesgo", "Franquicia $250.000"}},
}

var newerModelFactor = decimal.RequireFromString("1.2")

// CatalogueSize is the number of alternatives produced per snapshot.
func CatalogueSize() int {
	return len(insurers) * len(plans)
}

// Simulator prices a snapshot against a fixed five insurer, eight plan
// catalogue:
//
//	price = base * insurer factor * (1.2 if year > 2020) + noise(100..999)
//
// rounded to two decimals. It reads nothing and writes nothing.
type Simulator struct {
	latency     time.Duration
	failureRate float64
	logger      *zap.Logger

	mu  sync.Mutex
	rnd *rand.Rand
}

var _ interfaces.IMarketSimulator = (*Simulator)(nil)

type Option func(*Simulator)

// WithLatency delays every call, honouring ctx cancellation.
func WithLatency(d time.Duration) Option {
	return func(s *Simulator) { s.latency = d }
}

// WithFailureRate makes a call fail with ErrInjectedFailure with probability p.
func WithFailureRate(p float64) Option {
	return func(s *Simulator) { s.failureRate = p }
}

// WithRand replaces the random source; tests pass a seeded one.
func WithRand(r *rand.Rand) Option {
	return func(s *Simulator) { s.rnd = r }
}

func NewSimulator(logger *zap.Logger, opts ...Option) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Simulator{
		logger: logger.Named("pricing.simulator"),
		rnd:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type rawResponse struct {
	Source       string                      `json:"source"`
	SnapshotID   string                      `json:"snapshot_id"`
	Alternatives []entities.QuoteAlternative `json:"alternatives"`
}

func (s *Simulator) GenerateAlternatives(ctx context.Context, snapshot entities.RiskSnapshot) (entities.SimulationResult, error) {
	s.logger.Info("generating alternatives",
		zap.String("snapshot_id", snapshot.ID),
		zap.Duration("latency", s.latency),
	)

	if s.latency > 0 {
		t := time.NewTimer(s.latency)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return entities.SimulationResult{}, fmt.Errorf("market simulator: %w", ctx.Err())
		case <-t.C:
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failureRate > 0 && s.rnd.Float64() < s.failureRate {
		return entities.SimulationResult{}, ErrInjectedFailure
	}

	yearFactor := decimal.NewFromInt(1)
	if snapshot.Year > 2020 {
		yearFactor = newerModelFactor
	}

	alts := make([]entities.QuoteAlternative, 0, CatalogueSize())
	for _, ins := range insurers {
		for _, p := range plans {
			noise := decimal.NewFromInt(int64(100 + s.rnd.IntN(900)))
			price := p.base.Mul(ins.factor).Mul(yearFactor).Add(noise).Round(2)

			alts = append(alts, entities.QuoteAlternative{
				ExternalCode:    "sku_" + shortID(),
				ExternalQuoteID: "qid_" + shortID(),
				Insurer:         ins.name,
				Description:     p.code + " - " + strings.Join(p.features[:min(2, len(p.features))], ", "),
				PlanCode:        p.code,
				Grade:           p.grade,
				Price:           price,
				Currency:        currency,
				MarketingTitle:  ins.name + " - " + p.code,
				SumInsuredText:  sumInsuredText,
				FeatureTags:     append([]string(nil), p.features...),
				FullDetails:     featureDetails(p.features),
			})
		}
	}

	raw, err := json.Marshal(rawResponse{Source: simulatorSource, SnapshotID: snapshot.ID, Alternatives: alts})
	if err != nil {
		return entities.SimulationResult{}, fmt.Errorf("encode raw response: %w", err)
	}

	return entities.SimulationResult{
		TaskID:       "task_" + shortID(),
		Status:       statusSuccess,
		Raw:          raw,
		Alternatives: alts,
	}, nil
}

func featureDetails(features []string) map[string]string {
	out := make(map[string]string, len(features))
	for _, f := range features {
		switch {
		case strings.Contains(f, "Granizo"):
			out[f] = "Cubierto hasta suma asegurada."
		case strings.Contains(f, "Ruedas"):
			out[f] = "Reposición a nuevo, 1 evento anual."
		case strings.Contains(f, "Franquicia"):
			out[f] = "A cargo del asegurado en siniestros culpables."
		default:
			out[f] = "Incluido en póliza."
		}
	}
	return out
}

func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:13]
}
