package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLogs_FilterQuery(t *testing.T) {
	userID := uuid.New()
	var gotPath string
	var gotQuery map[string][]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode([]AuditLog{{LogID: uuid.New(), Action: AuditView, Timestamp: time.Now()}})
	})

	logs, err := client.AuditLogs(context.Background(), AuditFilter{
		UserID:       userID,
		Action:       AuditView,
		ResourceType: "ENCOUNTER",
		Limit:        50,
	})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "/api/audit/logs", gotPath)
	assert.Equal(t, userID.String(), gotQuery["user_id"][0])
	assert.Equal(t, "VIEW", gotQuery["action"][0])
	assert.Equal(t, "ENCOUNTER", gotQuery["resource_type"][0])
	assert.Equal(t, "50", gotQuery["limit"][0])
	assert.NotContains(t, gotQuery, "offset")
}

func TestAuditLogs_EmptyFilterSendsNoQuery(t *testing.T) {
	var gotRaw string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotRaw = r.URL.RawQuery
		json.NewEncoder(w).Encode([]AuditLog{})
	})

	_, err := client.AuditLogs(context.Background(), AuditFilter{})
	require.NoError(t, err)
	assert.Empty(t, gotRaw)
}

func TestResourceAuditLogs_PathAndValidation(t *testing.T) {
	resID := uuid.New()
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode([]AuditLog{})
	})

	_, err := client.ResourceAuditLogs(context.Background(), "ENCOUNTER", resID)
	require.NoError(t, err)
	assert.Equal(t, "/api/audit/logs/resource/ENCOUNTER/"+resID.String(), gotPath)

	_, err = client.ResourceAuditLogs(context.Background(), "", resID)
	require.Error(t, err)
}

func TestMyAuditLogsAndStats_Endpoints(t *testing.T) {
	var gotPaths []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.URL.Path)
		if r.URL.Path == "/api/audit/stats" {
			json.NewEncoder(w).Encode(AuditStats{TotalLogs: 12, LogsLast24h: 3})
			return
		}
		json.NewEncoder(w).Encode([]AuditLog{})
	})

	_, err := client.MyAuditLogs(context.Background(), AuditFilter{Action: AuditUpdate})
	require.NoError(t, err)
	stats, err := client.AuditStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"/api/audit/my-logs", "/api/audit/stats"}, gotPaths)
	assert.Equal(t, 12, stats.TotalLogs)
	assert.Equal(t, 3, stats.LogsLast24h)
}
