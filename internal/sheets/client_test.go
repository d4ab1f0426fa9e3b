package sheets_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"sheets-proxy/internal/sheets"
)

func writeKeyFile(t *testing.T, tokenURI string) string {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})

	b, err := json.Marshal(map[string]string{
		"type":           "service_account",
		"project_id":     "sheets-proxy-test",
		"private_key_id": "abc123",
		"private_key":    string(keyPEM),
		"client_email":   "reader@sheets-proxy-test.iam.gserviceaccount.com",
		"client_id":      "1234567890",
		"token_uri":      tokenURI,
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestNewLoadsServiceAccount(t *testing.T) {
	path := writeKeyFile(t, "https://oauth2.googleapis.com/token")

	c, err := sheets.New(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, "reader@sheets-proxy-test.iam.gserviceaccount.com", c.Account())
}

func TestNewFailures(t *testing.T) {
	dir := t.TempDir()
	malformed := filepath.Join(dir, "malformed.json")
	require.NoError(t, os.WriteFile(malformed, []byte("{not json"), 0o600))
	wrongType := filepath.Join(dir, "user.json")
	require.NoError(t, os.WriteFile(wrongType, []byte(`{"type":"authorized_user","client_id":"x","client_secret":"y","refresh_token":"z"}`), 0o600))

	tests := []struct {
		name string
		path string
		want string
	}{
		{"missing file", filepath.Join(dir, "nope.json"), "service account json:"},
		{"malformed json", malformed, "parse service account json:"},
		{"not a service account", wrongType, "parse service account json:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := sheets.New(context.Background(), tt.path)
			require.Nil(t, c)
			require.ErrorContains(t, err, tt.want)
		})
	}
}

func TestVerify(t *testing.T) {
	accept := true
	tokens := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !accept {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid JWT Signature."}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"Bearer","expires_in":3600}`))
	}))
	defer tokens.Close()

	c, err := sheets.New(context.Background(), writeKeyFile(t, tokens.URL))
	require.NoError(t, err)
	require.NoError(t, c.Verify())

	accept = false
	rejected, err := sheets.New(context.Background(), writeKeyFile(t, tokens.URL))
	require.NoError(t, err)
	require.ErrorContains(t, rejected.Verify(), "verify credentials:")
}
