package meetings_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	clienterrors "github.com/jrsteele09/go-meetings-client/internal/errors"
	"github.com/jrsteele09/go-meetings-client/meetings"
	"github.com/jrsteele09/go-meetings-client/pipeline"
	"github.com/jrsteele09/go-meetings-client/session/repofakes"
)

// meetingRecord is the fixture server's storage shape. Attendees and tasks
// use pointers so a record can deliberately serialise them as null.
type meetingRecord struct {
	ID             int64               `json:"id"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	StartDate      string              `json:"start_date"`
	EndDate        string              `json:"end_date"`
	Duration       int                 `json:"duration"`
	Location       string              `json:"location"`
	Notes          string              `json:"notes"`
	NumReschedules int                 `json:"num_reschedules"`
	ReminderSent   bool                `json:"reminder_sent"`
	Completed      bool                `json:"completed"`
	Attendees      []meetings.Attendee `json:"attendees"`
	Tasks          []meetings.Task     `json:"tasks"`
	ownerID        int64
}

type testFixture struct {
	records    map[int64]*meetingRecord
	order      []int64
	nextID     int64
	repository *meetings.Repository
	server     *httptest.Server
}

func (f *testFixture) add(record *meetingRecord) {
	f.records[record.ID] = record
	f.order = append(f.order, record.ID)
	if record.ID >= f.nextID {
		f.nextID = record.ID + 1
	}
}

func (f *testFixture) list(filter func(*meetingRecord) bool) []*meetingRecord {
	out := []*meetingRecord{}
	for _, id := range f.order {
		if record := f.records[id]; filter == nil || filter(record) {
			out = append(out, record)
		}
	}
	return out
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	f := &testFixture{
		records: make(map[int64]*meetingRecord),
		nextID:  1,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /meetings/{$}", func(w http.ResponseWriter, r *http.Request) {
		var record meetingRecord
		if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		record.ID = f.nextID
		if record.Attendees == nil {
			record.Attendees = []meetings.Attendee{}
		}
		if record.Tasks == nil {
			record.Tasks = []meetings.Task{}
		}
		f.add(&record)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(record)
	})
	mux.HandleFunc("GET /meetings/{$}", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(f.list(nil))
	})
	mux.HandleFunc("GET /meetings/by_user/{userID}", func(w http.ResponseWriter, r *http.Request) {
		userID, _ := strconv.ParseInt(r.PathValue("userID"), 10, 64)
		_ = json.NewEncoder(w).Encode(f.list(func(record *meetingRecord) bool {
			return record.ownerID == userID
		}))
	})
	mux.HandleFunc("GET /meetings/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		record, ok := f.records[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Meeting not found"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(record)
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)

	p, err := pipeline.New(f.server.URL, repofakes.NewFakeSessionStore())
	require.NoError(t, err)

	repository, err := meetings.New(p)
	require.NoError(t, err)
	f.repository = repository
	return f
}

func fixtureMeeting(id, ownerID int64) *meetingRecord {
	return &meetingRecord{
		ID:          id,
		Title:       fmt.Sprintf("Meeting %d", id),
		Description: "fixture",
		StartDate:   "2024-01-01T09:00:00",
		EndDate:     "2024-01-01T09:30:00",
		Attendees:   []meetings.Attendee{},
		Tasks:       []meetings.Task{},
		ownerID:     ownerID,
	}
}

func TestRepository_CreateReadRoundTrip(t *testing.T) {
	f := setupTestFixture(t)

	created, err := f.repository.Create(context.Background(), meetings.CreateParams{
		Title:       "Standup",
		StartDate:   "2024-01-01T09:00",
		EndDate:     "2024-01-01T09:30",
		Description: "daily sync",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, "Standup", created.Title)

	detail, err := f.repository.Details(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, detail.ID)
	require.Equal(t, "Standup", detail.Title)
	require.Equal(t, "daily sync", detail.Description)
	require.True(t, created.StartDate.Equal(detail.StartDate.Time))
	require.True(t, created.EndDate.Equal(detail.EndDate.Time))
}

func TestRepository_CreateValidation(t *testing.T) {
	f := setupTestFixture(t)

	t.Run("all four fields are required", func(t *testing.T) {
		_, err := f.repository.Create(context.Background(), meetings.CreateParams{})

		var verr *clienterrors.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.FieldErrors, 4)
	})

	t.Run("end before start is rejected", func(t *testing.T) {
		_, err := f.repository.Create(context.Background(), meetings.CreateParams{
			Title:       "Backwards",
			StartDate:   "2024-01-01T10:00",
			EndDate:     "2024-01-01T09:00",
			Description: "ends before it starts",
		})

		var verr *clienterrors.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Contains(t, verr.FieldErrors, "end_date")
	})

	t.Run("unparseable timestamp is rejected", func(t *testing.T) {
		_, err := f.repository.Create(context.Background(), meetings.CreateParams{
			Title:       "Bad date",
			StartDate:   "tomorrow-ish",
			EndDate:     "2024-01-01T09:30",
			Description: "x",
		})

		var verr *clienterrors.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Contains(t, verr.FieldErrors, "start_date")
	})
}

func TestRepository_ListingContainment(t *testing.T) {
	f := setupTestFixture(t)
	f.add(fixtureMeeting(3, 1))
	f.add(fixtureMeeting(7, 42))
	f.add(fixtureMeeting(9, 42))

	t.Run("by user returns exactly the owned meetings in server order", func(t *testing.T) {
		list, err := f.repository.ByUser(context.Background(), 42)
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, int64(7), list[0].ID)
		require.Equal(t, int64(9), list[1].ID)
	})

	t.Run("all returns every meeting", func(t *testing.T) {
		list, err := f.repository.All(context.Background())
		require.NoError(t, err)
		require.Len(t, list, 3)
		require.Equal(t, int64(3), list[0].ID)
		require.Equal(t, int64(7), list[1].ID)
		require.Equal(t, int64(9), list[2].ID)
	})

	t.Run("a user with no meetings gets an empty sequence", func(t *testing.T) {
		list, err := f.repository.ByUser(context.Background(), 999)
		require.NoError(t, err)
		require.NotNil(t, list)
		require.Empty(t, list)
	})
}

func TestRepository_UnknownID(t *testing.T) {
	f := setupTestFixture(t)
	f.add(fixtureMeeting(3, 1))

	_, err := f.repository.Details(context.Background(), 999999)
	require.ErrorIs(t, err, meetings.NotFoundErr)
}

func TestRepository_DetailSequencesNeverAbsent(t *testing.T) {
	f := setupTestFixture(t)
	record := fixtureMeeting(5, 1)
	record.Attendees = nil // serialises as null
	record.Tasks = nil
	f.add(record)

	detail, err := f.repository.Details(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, detail.Attendees)
	require.NotNil(t, detail.Tasks)
	require.Empty(t, detail.Attendees)
	require.Empty(t, detail.Tasks)
}

func TestRepository_DetailWithAttendeesAndTasks(t *testing.T) {
	f := setupTestFixture(t)
	record := fixtureMeeting(8, 1)
	record.Duration = 30
	record.Location = "Room 4"
	record.Notes = "bring the roadmap"
	record.NumReschedules = 2
	record.ReminderSent = true
	record.Attendees = []meetings.Attendee{{ID: 1, Name: "Ada"}, {ID: 2, Name: "Grace"}}
	record.Tasks = []meetings.Task{{ID: 11, Description: "send minutes"}}
	f.add(record)

	detail, err := f.repository.Details(context.Background(), 8)
	require.NoError(t, err)
	require.Equal(t, 30, detail.Duration)
	require.Equal(t, "Room 4", detail.Location)
	require.Equal(t, "bring the roadmap", detail.Notes)
	require.Equal(t, 2, detail.NumReschedules)
	require.True(t, detail.ReminderSent)
	require.False(t, detail.Completed)
	require.Equal(t, []meetings.Attendee{{ID: 1, Name: "Ada"}, {ID: 2, Name: "Grace"}}, detail.Attendees)
	require.Equal(t, []meetings.Task{{ID: 11, Description: "send minutes"}}, detail.Tasks)
}

func TestRepository_RejectsRecordsMissingRequiredFields(t *testing.T) {
	f := setupTestFixture(t)
	f.add(&meetingRecord{ID: 12, Title: "", StartDate: "2024-01-01T09:00:00", EndDate: "2024-01-01T09:30:00"})

	_, err := f.repository.Details(context.Background(), 12)

	var verr *clienterrors.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.FieldErrors, "title")
}
