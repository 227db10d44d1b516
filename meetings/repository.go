// Package meetings shapes raw scheduling-API responses into typed domain
// records and exposes them as repository operations. All calls route through
// the request pipeline; failures propagate to the caller unchanged apart
// from the 404 translation to NotFoundErr. Results are passed through in
// server order with no pagination, sorting, or filtering.
package meetings

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	clienterrors "github.com/jrsteele09/go-meetings-client/internal/errors"
	"github.com/jrsteele09/go-meetings-client/pipeline"
)

// Repository issues the meeting read and create operations.
type Repository struct {
	pipeline *pipeline.Pipeline
	logger   zerolog.Logger
}

// Option modifies a Repository during construction.
type Option func(*Repository)

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Repository) {
		r.logger = logger
	}
}

// New constructs a Repository over the given pipeline.
func New(p *pipeline.Pipeline, options ...Option) (*Repository, error) {
	if p == nil {
		return nil, errors.New("[meetings.New] pipeline is required")
	}

	r := &Repository{
		pipeline: p,
		logger:   zerolog.Nop(),
	}
	for _, opt := range options {
		opt(r)
	}
	return r, nil
}

// CreateParams carries the fields of a meeting to create. Timestamps are the
// wire strings the caller already holds; they are validated, not reformatted.
type CreateParams struct {
	Title       string `json:"title"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
}

// Validate checks that all four fields are present, that the timestamps are
// parseable, and that the meeting does not end before it starts.
func (p CreateParams) Validate() error {
	verr := &clienterrors.ValidationError{}
	if p.Title == "" {
		verr.Add("title", "title is required")
	}
	if p.Description == "" {
		verr.Add("description", "description is required")
	}

	var start, end Timestamp
	var err error
	if p.StartDate == "" {
		verr.Add("start_date", "start date is required")
	} else if start, err = ParseTimestamp(p.StartDate); err != nil {
		verr.Add("start_date", err.Error())
	}
	if p.EndDate == "" {
		verr.Add("end_date", "end date is required")
	} else if end, err = ParseTimestamp(p.EndDate); err != nil {
		verr.Add("end_date", err.Error())
	}

	if !start.IsZero() && !end.IsZero() && end.Before(start.Time) {
		verr.Add("end_date", "meeting ends before it starts")
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

// Create posts a new meeting and returns the server-assigned record.
func (r *Repository) Create(ctx context.Context, params CreateParams) (Meeting, error) {
	if err := params.Validate(); err != nil {
		return Meeting{}, err
	}

	data, err := r.pipeline.Post(ctx, "/meetings/", params)
	if err != nil {
		return Meeting{}, errors.Wrap(err, "[Repository.Create] create meeting")
	}

	meeting, err := decodeMeeting(data)
	if err != nil {
		return Meeting{}, errors.Wrap(err, "[Repository.Create]")
	}

	r.logger.Info().Int64("meeting_id", meeting.ID).Str("title", meeting.Title).Msg("meeting created")
	return meeting, nil
}

// Details fetches a meeting by id, including its attendees and tasks.
// A server 404 surfaces as NotFoundErr.
func (r *Repository) Details(ctx context.Context, id int64) (MeetingDetail, error) {
	data, err := r.pipeline.Get(ctx, fmt.Sprintf("/meetings/%d", id))
	if err != nil {
		var srvErr *clienterrors.ServerError
		if clienterrors.As(err, &srvErr) && srvErr.StatusCode == 404 {
			return MeetingDetail{}, clienterrors.Wrapf(NotFoundErr, "[Repository.Details] meeting %d", id)
		}
		return MeetingDetail{}, errors.Wrapf(err, "[Repository.Details] meeting %d", id)
	}

	detail, err := decodeMeetingDetail(data)
	if err != nil {
		return MeetingDetail{}, errors.Wrap(err, "[Repository.Details]")
	}
	return detail, nil
}

// ByUser lists the meetings associated with a user, in server order. A user
// with no meetings yields an empty slice.
func (r *Repository) ByUser(ctx context.Context, userID int64) ([]Meeting, error) {
	data, err := r.pipeline.Get(ctx, fmt.Sprintf("/meetings/by_user/%d", userID))
	if err != nil {
		return nil, errors.Wrapf(err, "[Repository.ByUser] user %d", userID)
	}
	return decodeMeetings(data)
}

// All lists every meeting, unfiltered, in server order.
func (r *Repository) All(ctx context.Context) ([]Meeting, error) {
	data, err := r.pipeline.Get(ctx, "/meetings/")
	if err != nil {
		return nil, errors.Wrap(err, "[Repository.All] list meetings")
	}
	return decodeMeetings(data)
}

// decodeMeeting rejects records missing required fields rather than trusting
// the payload blindly at every call site.
func decodeMeeting(data []byte) (Meeting, error) {
	var meeting Meeting
	if err := json.Unmarshal(data, &meeting); err != nil {
		return Meeting{}, errors.Wrap(err, "parse meeting")
	}
	if err := validateMeeting(meeting); err != nil {
		return Meeting{}, err
	}
	return meeting, nil
}

func decodeMeetings(data []byte) ([]Meeting, error) {
	var list []Meeting
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, errors.Wrap(err, "parse meeting list")
	}
	for i, meeting := range list {
		if err := validateMeeting(meeting); err != nil {
			return nil, errors.Wrapf(err, "meeting at index %d", i)
		}
	}
	if list == nil {
		list = []Meeting{}
	}
	return list, nil
}

func decodeMeetingDetail(data []byte) (MeetingDetail, error) {
	var detail MeetingDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		return MeetingDetail{}, errors.Wrap(err, "parse meeting detail")
	}
	if err := validateMeeting(detail.Meeting); err != nil {
		return MeetingDetail{}, err
	}
	// Always sequences, possibly empty, never absent.
	if detail.Attendees == nil {
		detail.Attendees = []Attendee{}
	}
	if detail.Tasks == nil {
		detail.Tasks = []Task{}
	}
	return detail, nil
}

func validateMeeting(meeting Meeting) error {
	verr := &clienterrors.ValidationError{}
	if meeting.ID == 0 {
		verr.Add("id", "missing id")
	}
	if meeting.Title == "" {
		verr.Add("title", "missing title")
	}
	if meeting.StartDate.IsZero() {
		verr.Add("start_date", "missing start date")
	}
	if meeting.EndDate.IsZero() {
		verr.Add("end_date", "missing end date")
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}
