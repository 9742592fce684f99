package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/medtrix/medtrix/ent"
	"github.com/medtrix/medtrix/ent/airequest"
)

// AIRequestData captures a single text-generation call.
type AIRequestData struct {
	Provider     string
	Model        string
	Purpose      string
	SessionID    string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	Prompt       string
	Response     string
}

// AIRequestRecord is a stored AI request with its id and time.
type AIRequestRecord struct {
	ID        int
	Timestamp time.Time
	AIRequestData
}

// QueryOpts filters AI request queries.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	Purpose string // exact purpose match when set
}

// UsageStat aggregates calls sharing one key (purpose or model).
type UsageStat struct {
	Key          string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// RequestRepo stores and queries the AI request log.
type RequestRepo interface {
	// Append records one AI request.
	Append(ctx context.Context, data AIRequestData) error

	// Query returns requests newest first.
	Query(ctx context.Context, opts QueryOpts) ([]AIRequestRecord, error)

	// Get returns one request, or nil if it does not exist.
	Get(ctx context.Context, id int) (*AIRequestRecord, error)

	// UsageByPurpose aggregates calls per purpose.
	UsageByPurpose(ctx context.Context) ([]UsageStat, error)

	// UsageByModel aggregates calls per model.
	UsageByModel(ctx context.Context) ([]UsageStat, error)
}

type requestRepo struct {
	client *ent.Client
}

func (r *requestRepo) Append(ctx context.Context, data AIRequestData) error {
	_, err := r.client.AIRequest.Create().
		SetProvider(data.Provider).
		SetModel(data.Model).
		SetPurpose(data.Purpose).
		SetSessionID(data.SessionID).
		SetInputTokens(data.InputTokens).
		SetOutputTokens(data.OutputTokens).
		SetLatencyMs(data.LatencyMs).
		SetSuccess(data.Success).
		SetErrorMessage(data.ErrorMessage).
		SetPrompt(data.Prompt).
		SetResponse(data.Response).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save AI request: %w", err)
	}
	return nil
}

func (r *requestRepo) Query(ctx context.Context, opts QueryOpts) ([]AIRequestRecord, error) {
	q := r.client.AIRequest.Query().
		Order(ent.Desc(airequest.FieldTimestamp), ent.Desc(airequest.FieldID))
	if opts.Purpose != "" {
		q = q.Where(airequest.Purpose(opts.Purpose))
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	rows, err := q.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query AI requests: %w", err)
	}

	out := make([]AIRequestRecord, len(rows))
	for i, row := range rows {
		out[i] = toRequestRecord(row)
	}
	return out, nil
}

func (r *requestRepo) Get(ctx context.Context, id int) (*AIRequestRecord, error) {
	row, err := r.client.AIRequest.Get(ctx, id)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get AI request %d: %w", id, err)
	}
	rec := toRequestRecord(row)
	return &rec, nil
}

func (r *requestRepo) UsageByPurpose(ctx context.Context) ([]UsageStat, error) {
	return r.usage(ctx, func(row *ent.AIRequest) string { return row.Purpose })
}

func (r *requestRepo) UsageByModel(ctx context.Context) ([]UsageStat, error) {
	return r.usage(ctx, func(row *ent.AIRequest) string { return row.Model })
}

// usage aggregates in memory; the log is small enough that a GROUP BY buys
// nothing.
func (r *requestRepo) usage(ctx context.Context, keyOf func(*ent.AIRequest) string) ([]UsageStat, error) {
	rows, err := r.client.AIRequest.Query().All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query AI usage: %w", err)
	}

	byKey := make(map[string]*UsageStat)
	latency := make(map[string]int64)
	for _, row := range rows {
		k := keyOf(row)
		st, ok := byKey[k]
		if !ok {
			st = &UsageStat{Key: k}
			byKey[k] = st
		}
		st.Calls++
		st.InputTokens += row.InputTokens
		st.OutputTokens += row.OutputTokens
		latency[k] += row.LatencyMs
	}

	out := make([]UsageStat, 0, len(byKey))
	for k, st := range byKey {
		st.AvgLatencyMs = latency[k] / int64(st.Calls)
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func toRequestRecord(row *ent.AIRequest) AIRequestRecord {
	return AIRequestRecord{
		ID:        row.ID,
		Timestamp: row.Timestamp,
		AIRequestData: AIRequestData{
			Provider:     row.Provider,
			Model:        row.Model,
			Purpose:      row.Purpose,
			SessionID:    row.SessionID,
			InputTokens:  row.InputTokens,
			OutputTokens: row.OutputTokens,
			LatencyMs:    row.LatencyMs,
			Success:      row.Success,
			ErrorMessage: row.ErrorMessage,
			Prompt:       row.Prompt,
			Response:     row.Response,
		},
	}
}
