package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/recuperacredito/recupera-go/config"
	"github.com/recuperacredito/recupera-go/internal/aggregation"
	"github.com/recuperacredito/recupera-go/internal/concentration"
	"github.com/recuperacredito/recupera-go/internal/dataset"
	"github.com/recuperacredito/recupera-go/internal/logger"
	"github.com/recuperacredito/recupera-go/internal/scoring"
)

// PortfolioHandler serves portfolio analysis endpoints.
type PortfolioHandler struct {
	cfg       config.Config
	reader    dataset.SourceReader
	store     *DatasetStore
	validator *validator.Validate
	timeout   time.Duration
}

// NewPortfolioHandler creates a handler backed by the given source reader
// and upload store.
func NewPortfolioHandler(cfg config.Config, reader dataset.SourceReader, store *DatasetStore) *PortfolioHandler {
	return &PortfolioHandler{
		cfg:       cfg,
		reader:    reader,
		store:     store,
		validator: validator.New(),
		timeout:   10 * time.Second,
	}
}

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

type portfolioQuery struct {
	Dataset  string   `query:"dataset"`
	MinScore *float64 `query:"min_score" validate:"omitempty,min=0"`
	MaxScore *float64 `query:"max_score" validate:"omitempty,min=0"`
	Explain  bool     `query:"explain"`
}

// portfolioView is a resolved, scored and filtered dataset.
type portfolioView struct {
	scores     []scoring.CustomerScore
	domain     scoring.MinMax
	hasDomain  bool
	sampleData bool
	filter     *scoring.MinMax
}

func (h *PortfolioHandler) resolve(ctx context.Context, q portfolioQuery) (*portfolioView, error) {
	var table *dataset.Table
	view := &portfolioView{}

	if q.Dataset != "" {
		stored, ok := h.store.Get(q.Dataset)
		if !ok {
			return nil, echo.NewHTTPError(http.StatusNotFound, "unknown dataset id")
		}
		table = stored
	} else {
		read, err := h.reader.ReadTable(ctx)
		if errors.Is(err, dataset.ErrSourceUnavailable) {
			logger.Warn("source unavailable, serving sample data")
			read = dataset.SampleTable()
			view.sampleData = true
		} else if err != nil {
			return nil, err
		}
		table = read
	}

	if err := dataset.Validate(table); err != nil {
		return nil, echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	view.domain, view.hasDomain = scoring.ScoreDomain(table)

	// The delay normalizer always comes from the full dataset, so score
	// before applying the range filter.
	scorer := scoring.NewScorer(h.cfg.Scoring)
	scores := scorer.Score(table, q.Explain)

	if q.MinScore != nil || q.MaxScore != nil {
		low, high := view.domain.Min, view.domain.Max
		if q.MinScore != nil {
			low = *q.MinScore
		}
		if q.MaxScore != nil {
			high = *q.MaxScore
		}
		if low > high {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "min_score must not exceed max_score")
		}
		scores = scoring.FilterByRange(scores, low, high)
		view.filter = &scoring.MinMax{Min: low, Max: high}
	}

	bands, err := aggregation.NewBandSet(h.cfg.Bands)
	if err != nil {
		return nil, err
	}
	bands.Attach(scores)

	view.scores = scores
	return view, nil
}

func (h *PortfolioHandler) bindQuery(c echo.Context) (portfolioQuery, error) {
	var q portfolioQuery
	if err := c.Bind(&q); err != nil {
		logger.Error("invalid portfolio query", err)
		return q, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.validator.Struct(&q); err != nil {
		return q, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return q, nil
}

func (h *PortfolioHandler) withView(c echo.Context, fn func(*portfolioView) error) error {
	start := time.Now()
	defer func() {
		PortfolioRequestLatency.Observe(time.Since(start).Seconds())
		PortfolioRequests.Inc()
	}()

	q, err := h.bindQuery(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	view, err := h.resolve(ctx, q)
	if err != nil {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			return httpErr
		}
		logger.Error("failed to resolve portfolio", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}
	return fn(view)
}

// SummaryResponse is the headline KPI payload.
type SummaryResponse struct {
	Count            int      `json:"count"`
	MeanDebt         *float64 `json:"mean_debt,omitempty"`
	TotalDebt        float64  `json:"total_debt"`
	RecoverableCount int      `json:"recoverable_count"`
	Concentration    float64  `json:"debt_concentration"`
	SampleData       bool     `json:"sample_data,omitempty"`
}

// Summary returns the KPI summary of the (filtered) portfolio.
func (h *PortfolioHandler) Summary(c echo.Context) error {
	return h.withView(c, func(view *portfolioView) error {
		summary := aggregation.Summarize(view.scores)

		debts := make([]float64, len(view.scores))
		for i, sc := range view.scores {
			debts[i] = sc.Customer.DebtAmount
		}

		return c.JSON(http.StatusOK, SummaryResponse{
			Count:            summary.Count,
			MeanDebt:         summary.MeanDebt,
			TotalDebt:        summary.TotalDebt,
			RecoverableCount: summary.RecoverableCount,
			Concentration:    concentration.DebtEntropy(debts),
			SampleData:       view.sampleData,
		})
	})
}

// BandResponse is one score band aggregate.
type BandResponse struct {
	Band      string  `json:"band"`
	TotalDebt float64 `json:"total_debt"`
	Count     int     `json:"count"`
}

// Bands returns debt aggregated by score band.
func (h *PortfolioHandler) Bands(c echo.Context) error {
	return h.withView(c, func(view *portfolioView) error {
		bands, err := aggregation.NewBandSet(h.cfg.Bands)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
		}

		totals := bands.AggregateDebt(view.scores)
		resp := make([]BandResponse, len(totals))
		for i, b := range totals {
			resp[i] = BandResponse{Band: b.Band, TotalDebt: b.TotalDebt, Count: b.Count}
		}
		return c.JSON(http.StatusOK, resp)
	})
}

// HistogramResponse is one score histogram bin.
type HistogramResponse struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// Histogram returns the credit score distribution.
func (h *PortfolioHandler) Histogram(c echo.Context) error {
	return h.withView(c, func(view *portfolioView) error {
		bins := aggregation.ScoreHistogram(view.scores, h.cfg.Histogram.Bins)
		resp := make([]HistogramResponse, len(bins))
		for i, b := range bins {
			resp[i] = HistogramResponse{Low: b.Low, High: b.High, Count: b.Count}
		}
		return c.JSON(http.StatusOK, resp)
	})
}

// AgingResponse is one delinquency age bucket.
type AgingResponse struct {
	Label     string  `json:"label"`
	TotalDebt float64 `json:"total_debt"`
	Count     int     `json:"count"`
}

// Aging returns debt aggregated by delinquency age.
func (h *PortfolioHandler) Aging(c echo.Context) error {
	return h.withView(c, func(view *portfolioView) error {
		buckets := aggregation.AgingBuckets(view.scores, h.cfg.Aging.EdgesDays)
		resp := make([]AgingResponse, len(buckets))
		for i, b := range buckets {
			resp[i] = AgingResponse{Label: b.Label, TotalDebt: b.TotalDebt, Count: b.Count}
		}
		return c.JSON(http.StatusOK, resp)
	})
}

// CustomerResponse is one scored customer row.
type CustomerResponse struct {
	CreditScore float64            `json:"credit_score"`
	DaysOverdue float64            `json:"days_overdue"`
	DebtAmount  float64            `json:"debt_amount"`
	Probability float64            `json:"probability"`
	Level       string             `json:"level"`
	Band        string             `json:"band,omitempty"`
	Breakdown   *BreakdownResponse `json:"breakdown,omitempty"`
}

// BreakdownResponse is the probability breakdown of one customer.
type BreakdownResponse struct {
	ScoreComponent float64 `json:"score_component"`
	DelayPenalty   float64 `json:"delay_penalty"`
}

// Customers returns the scored rows ranked by recovery probability.
func (h *PortfolioHandler) Customers(c echo.Context) error {
	return h.withView(c, func(view *portfolioView) error {
		ranked := scoring.Rank(view.scores)
		resp := make([]CustomerResponse, len(ranked))
		for i, sc := range ranked {
			item := CustomerResponse{
				CreditScore: sc.Customer.CreditScore,
				DaysOverdue: sc.Customer.DaysOverdue,
				DebtAmount:  sc.Customer.DebtAmount,
				Probability: sc.Probability,
				Level:       string(sc.Level),
				Band:        sc.Band,
			}
			if sc.Breakdown != nil {
				item.Breakdown = &BreakdownResponse{
					ScoreComponent: sc.Breakdown.ScoreComponent,
					DelayPenalty:   sc.Breakdown.DelayPenalty,
				}
			}
			resp[i] = item
		}
		return c.JSON(http.StatusOK, resp)
	})
}

// DomainResponse is the observed credit score range of the full dataset.
type DomainResponse struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Domain returns the observed credit score range, which bounds range filters.
func (h *PortfolioHandler) Domain(c echo.Context) error {
	return h.withView(c, func(view *portfolioView) error {
		if !view.hasDomain {
			return c.JSON(http.StatusNotFound, ResponseError{Message: "dataset is empty"})
		}
		return c.JSON(http.StatusOK, DomainResponse{Min: view.domain.Min, Max: view.domain.Max})
	})
}

// UploadResponse acknowledges an accepted dataset upload.
type UploadResponse struct {
	ID    string `json:"id"`
	Rows  int    `json:"rows"`
	Usage string `json:"usage"`
}

// Upload accepts a CSV dataset via multipart form and stores it for
// later queries via the dataset query parameter.
func (h *PortfolioHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		logger.Error("missing upload file", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "multipart field 'file' is required"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	defer src.Close()

	table, err := dataset.ParseCSV(src, fileHeader.Filename, h.cfg.Columns)
	if err != nil {
		var missing *dataset.MissingColumnError
		if errors.As(err, &missing) {
			return c.JSON(http.StatusUnprocessableEntity, ResponseError{Message: missing.Error()})
		}
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	id := h.store.Put(table)
	DatasetUploads.Inc()
	logger.Info("dataset uploaded", "id", id, "rows", table.Len())

	return c.JSON(http.StatusCreated, UploadResponse{
		ID:    id,
		Rows:  table.Len(),
		Usage: "pass ?dataset=" + id + " to portfolio endpoints",
	})
}
