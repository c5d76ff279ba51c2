package publisher

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campaignhq/campaign-studio-backend/internal/models"
)

func TestSendGridPublishSuccess(t *testing.T) {
	var captured sgMailRequest
	var authHeader string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/mail/send", r.URL.Path)
		authHeader = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	pub := NewSendGridPublisher("test-key", "from@x.com", srv.URL, nil, 5*time.Second)
	c := publishTestCampaign()

	result, err := pub.Publish(context.Background(), c, models.ChannelEmail,
		"Subject: Launch\n\nHello body with https://example.com/pottery", []string{"a@x.com", "a@x.com", "b@y.org"})
	require.NoError(t, err)

	assert.True(t, result.OK)
	assert.Equal(t, "sendgrid://2", result.Outfile)
	assert.Equal(t, 2, result.RecipientsCount)

	assert.Equal(t, "Bearer test-key", authHeader)
	assert.Equal(t, "from@x.com", captured.From.Email)
	require.Len(t, captured.Personalizations, 2)
	assert.Equal(t, "a@x.com", captured.Personalizations[0].To[0].Email)
	assert.Equal(t, "[פרסומת] Launch", captured.Subject)
	require.Len(t, captured.Content, 1)
	assert.Equal(t, "text/plain", captured.Content[0].Type)
}

func TestSendGridPublishFailureStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"errors":[{"message":"bad key"}]}`))
	}))
	defer srv.Close()

	pub := NewSendGridPublisher("bad-key", "from@x.com", srv.URL, nil, 5*time.Second)

	result, err := pub.Publish(context.Background(), publishTestCampaign(), models.ChannelEmail, "body", []string{"a@x.com"})
	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Contains(t, result.Message, "SendGrid 401")
	assert.Contains(t, result.Message, "bad key")
	assert.Equal(t, 1, result.RecipientsCount)
}

func TestSendGridPublishNetworkError(t *testing.T) {
	pub := NewSendGridPublisher("key", "from@x.com", "http://127.0.0.1:1", nil, time.Second)

	result, err := pub.Publish(context.Background(), publishTestCampaign(), models.ChannelEmail, "body", []string{"a@x.com"})
	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Contains(t, result.Message, "unreachable")
	assert.Equal(t, 1, result.RecipientsCount)
}

func TestSendGridPublishNoRecipients(t *testing.T) {
	pub := NewSendGridPublisher("key", "from@x.com", "http://127.0.0.1:1", nil, time.Second)

	result, err := pub.Publish(context.Background(), publishTestCampaign(), models.ChannelEmail, "body", nil)
	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Contains(t, result.Message, "No recipients")
}

func TestSendGridCheckConnectionSandbox(t *testing.T) {
	var captured sgMailRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	pub := NewSendGridPublisher("key", "from@x.com", srv.URL, nil, 5*time.Second)
	require.NoError(t, pub.CheckConnection(context.Background()))

	require.NotNil(t, captured.MailSettings)
	assert.True(t, captured.MailSettings.SandboxMode.Enable)
}

func TestResolveRecipients(t *testing.T) {
	got := resolveRecipients([]string{"a@x.com", " a@x.com ", "b@y.org", ""}, []string{"ignored@z.net"})
	assert.Equal(t, []string{"a@x.com", "b@y.org"}, got)

	got = resolveRecipients(nil, []string{"d@z.net", "d@z.net"})
	assert.Equal(t, []string{"d@z.net"}, got)

	assert.Empty(t, resolveRecipients(nil, nil))
}
