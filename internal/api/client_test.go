package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"pelada-manager/internal/config"
	"pelada-manager/internal/domain"
	"pelada-manager/pkg/errors"
	"pelada-manager/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		APIBaseURL:  srv.URL,
		HTTPTimeout: 5 * time.Second,
	}
	return NewClient(cfg, logger.NewNop())
}

func TestClientSendsTokenHeader(t *testing.T) {
	var gotAuth string
	r := chi.NewRouter()
	r.Get("/api/ping", func(w http.ResponseWriter, req *http.Request) {
		gotAuth = req.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})

	client := newTestClient(t, r)
	client.SetToken("abc123")

	require.NoError(t, client.Get(context.Background(), "/api/ping", nil))
	assert.Equal(t, "Token abc123", gotAuth)

	client.ClearToken()
	require.NoError(t, client.Get(context.Background(), "/api/ping", nil))
	assert.Empty(t, gotAuth)
}

func TestClientAuthErrorCallback(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/unauthorized", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"session expired"}`))
	})
	r.Get("/api/forbidden", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"admins only"}`))
	})
	r.Get("/api/broken", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	client := newTestClient(t, r)

	calls := 0
	client.OnAuthError(func() { calls++ })

	err := client.Get(context.Background(), "/api/unauthorized", nil)
	require.Error(t, err)
	assert.True(t, errors.IsAuthError(err))
	assert.Contains(t, err.Error(), "session expired")
	assert.Equal(t, 1, calls, "401 fires the callback exactly once per failed call")

	err = client.Get(context.Background(), "/api/forbidden", nil)
	require.Error(t, err)
	assert.True(t, errors.IsForbiddenError(err))
	assert.False(t, errors.IsAuthError(err))
	assert.Equal(t, 1, calls, "403 must not fire the auth callback")

	err = client.Get(context.Background(), "/api/broken", nil)
	require.Error(t, err)
	assert.Equal(t, 1, calls, "5xx must not fire the auth callback")

	err = client.Get(context.Background(), "/api/unauthorized", nil)
	require.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestClientErrorMessageShapes(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"flat message", `{"message":"flat"}`, "flat"},
		{"string error", `{"error":"stringy"}`, "stringy"},
		{"nested error", `{"error":{"message":"nested"}}`, "nested"},
		{"garbage body", `not json`, "Bad Request"},
		{"empty body", ``, "Bad Request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := chi.NewRouter()
			r.Get("/api/fail", func(w http.ResponseWriter, req *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(tt.body))
			})

			client := newTestClient(t, r)
			err := client.Get(context.Background(), "/api/fail", nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestGetPaginatedHeaders(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/organizations/1/players", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "2", req.URL.Query().Get("page"))
		w.Header().Set("X-Total", "45")
		w.Header().Set("X-Page", "2")
		w.Header().Set("X-Per-Page", "20")
		w.Header().Set("X-Total-Pages", "3")
		w.Write([]byte(`[{"id":1,"name":"Ana"},{"id":2,"name":"Bruno"}]`))
	})

	client := newTestClient(t, r)

	params := url.Values{}
	params.Set("page", "2")
	var players []domain.Player
	info, err := client.GetPaginated(context.Background(), "/api/organizations/1/players", params, &players)
	require.NoError(t, err)

	assert.Len(t, players, 2)
	assert.Equal(t, &PageInfo{Total: 45, Page: 2, PerPage: 20, TotalPages: 3}, info)
}

func TestGetPaginatedMissingHeaders(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/organizations/1/players", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`[{"id":1},{"id":2},{"id":3}]`))
	})

	client := newTestClient(t, r)

	var players []domain.Player
	info, err := client.GetPaginated(context.Background(), "/api/organizations/1/players", nil, &players)
	require.NoError(t, err)

	assert.Equal(t, &PageInfo{Total: 3, Page: 1, PerPage: 3, TotalPages: 1}, info)
}

func TestRemoveAdminRefusesLastAdmin(t *testing.T) {
	deletes := 0
	r := chi.NewRouter()
	r.Get("/api/organizations/7/admins", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`[{"id":10,"name":"Solo Admin"}]`))
	})
	r.Delete("/api/organizations/7/admins/10", func(w http.ResponseWriter, req *http.Request) {
		deletes++
		w.WriteHeader(http.StatusNoContent)
	})

	client := newTestClient(t, r)

	err := client.RemoveAdmin(context.Background(), 7, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "last admin")
	assert.Zero(t, deletes, "no delete call may be issued for the last admin")
}

func TestRemoveAdminAllowsWhenOthersRemain(t *testing.T) {
	deletes := 0
	r := chi.NewRouter()
	r.Get("/api/organizations/7/admins", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`[{"id":10},{"id":11}]`))
	})
	r.Delete("/api/organizations/7/admins/10", func(w http.ResponseWriter, req *http.Request) {
		deletes++
		w.WriteHeader(http.StatusNoContent)
	})

	client := newTestClient(t, r)

	require.NoError(t, client.RemoveAdmin(context.Background(), 7, 10))
	assert.Equal(t, 1, deletes)
}

// TestPeladaLifecycle drives a session through its server-owned status
// progression: created open, begun into running, then into voting with votes
// cast.
func TestPeladaLifecycle(t *testing.T) {
	status := domain.PeladaStatusOpen
	var castVotes []domain.PlayerVote

	r := chi.NewRouter()
	r.Post("/api/peladas", func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprintf(w, `{"id":5,"organization_id":1,"num_teams":2,"players_per_team":5,"status":%q}`, status)
	})
	r.Post("/api/peladas/5/begin", func(w http.ResponseWriter, req *http.Request) {
		status = domain.PeladaStatusRunning
		w.WriteHeader(http.StatusNoContent)
	})
	r.Post("/api/peladas/5/start_voting", func(w http.ResponseWriter, req *http.Request) {
		status = domain.PeladaStatusVoting
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/api/peladas/5/dashboard-data", func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprintf(w, `{"pelada":{"id":5,"status":%q}}`, status)
	})
	r.Get("/api/peladas/5/voting", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"can_vote":true,"has_voted":false,"eligible_players":[{"id":100,"name":"Ana"}]}`))
	})
	r.Post("/api/peladas/5/votes", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Votes []domain.PlayerVote `json:"votes"`
		}
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		castVotes = body.Votes
		w.WriteHeader(http.StatusNoContent)
	})

	client := newTestClient(t, r)
	ctx := context.Background()

	pelada, err := client.CreatePelada(ctx, &CreatePeladaRequest{OrganizationID: 1, NumTeams: 2, PlayersPerTeam: 5})
	require.NoError(t, err)
	assert.Equal(t, domain.PeladaStatusOpen, pelada.Status)

	require.NoError(t, client.BeginPelada(ctx, 5))
	data, err := client.GetDashboardData(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.PeladaStatusRunning, data.Pelada.Status)

	require.NoError(t, client.StartVoting(ctx, 5))
	data, err = client.GetDashboardData(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.PeladaStatusVoting, data.Pelada.Status)

	info, err := client.GetVotingInfo(ctx, 5)
	require.NoError(t, err)
	assert.True(t, info.CanVote)
	require.Len(t, info.EligiblePlayers, 1)

	votes := []domain.PlayerVote{{PlayerID: 100, Score: 8.5}}
	require.NoError(t, client.CastVotes(ctx, 5, votes))
	assert.Equal(t, votes, castVotes)
}

func TestInvitationRoundTrips(t *testing.T) {
	var acceptedToken string

	r := chi.NewRouter()
	r.Post("/api/organizations/7/invitations", func(w http.ResponseWriter, req *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		if email, ok := body["email"]; ok {
			fmt.Fprintf(w, `{"id":1,"organization_id":7,"email":%q,"token":"tok-1","status":"pending"}`, email)
			return
		}
		w.Write([]byte(`{"id":2,"organization_id":7,"token":"tok-2","status":"pending"}`))
	})
	r.Delete("/api/organizations/7/invitations/1", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Post("/api/invitations/accept", func(w http.ResponseWriter, req *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		acceptedToken = body["token"]
		w.WriteHeader(http.StatusNoContent)
	})

	client := newTestClient(t, r)
	ctx := context.Background()

	targeted, err := client.CreateInvitation(ctx, 7, "bruno@example.com")
	require.NoError(t, err)
	assert.Equal(t, "bruno@example.com", targeted.Email)
	assert.Equal(t, domain.InvitationStatusPending, targeted.Status)

	// An empty email produces a public join link
	link, err := client.CreateInvitation(ctx, 7, "")
	require.NoError(t, err)
	assert.Empty(t, link.Email)
	assert.Equal(t, "tok-2", link.Token)

	require.NoError(t, client.RevokeInvitation(ctx, 7, 1))

	require.NoError(t, client.AcceptInvitation(ctx, "tok-2"))
	assert.Equal(t, "tok-2", acceptedToken)
}

func TestFacadeRoundTrips(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/peladas", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"id":5,"organization_id":1,"num_teams":2,"players_per_team":5,"status":"open"}`))
	})
	r.Get("/api/peladas/5/dashboard-data", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{
			"pelada":{"id":5,"status":"running"},
			"matches":[{"id":1,"pelada_id":5,"home_team_id":1,"away_team_id":2,"status":"scheduled"}],
			"teams":[{"id":1,"pelada_id":5,"name":"Time 1"},{"id":2,"pelada_id":5,"name":"Time 2"}],
			"team_players":{"1":[100],"2":[101]},
			"match_lineups":{"1":[{"match_id":1,"team_id":1,"player_id":100}]}
		}`))
	})
	r.Post("/api/scores/normalized", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"100":7.5,"101":6.0}`))
	})

	client := newTestClient(t, r)
	ctx := context.Background()

	pelada, err := client.CreatePelada(ctx, &CreatePeladaRequest{OrganizationID: 1, NumTeams: 2, PlayersPerTeam: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(5), pelada.ID)
	assert.Equal(t, domain.PeladaStatusOpen, pelada.Status)

	data, err := client.GetDashboardData(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.PeladaStatusRunning, data.Pelada.Status)
	assert.Equal(t, []int64{100}, data.TeamPlayers[1])
	assert.Len(t, data.MatchLineups[1], 1)

	scores, err := client.GetNormalizedScores(ctx, []int64{100, 101})
	require.NoError(t, err)
	assert.Equal(t, map[int64]float64{100: 7.5, 101: 6.0}, scores)
}
