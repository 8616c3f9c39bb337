package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/asc/internal/constants"
	"github.com/fivetwenty-io/asc/pkg/asc"
)

// setupViper resets global configuration and points the CLI at baseURL with a static token.
func setupViper(t *testing.T, baseURL, output string) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("api", baseURL)
	viper.Set("token", "test-token")
	viper.Set("output", output)
}

// execute runs cmd with args and returns what it wrote to stdout.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	if args == nil {
		args = []string{}
	}

	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}

func newAPIServer(t *testing.T, router chi.Router) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return server
}

func writeDocument(writer http.ResponseWriter, status int, body string) {
	writer.Header().Set("Content-Type", constants.JSONContentType)
	writer.WriteHeader(status)
	_, _ = writer.Write([]byte(body))
}

func TestCommandTree(t *testing.T) {
	tests := []struct {
		cmd         *cobra.Command
		use         string
		subcommands []string
	}{
		{NewConfigCommand(), "config", []string{"show", "set"}},
		{NewAppsCommand(), "apps", []string{"list"}},
		{NewBuildsCommand(), "builds", []string{"list"}},
		{NewBundleIDsCommand(), "bundle-ids", []string{"list"}},
		{NewCertificatesCommand(), "certificates", []string{"list", "download"}},
		{NewDevicesCommand(), "devices", []string{"list"}},
		{NewProfilesCommand(), "profiles", []string{"list", "download"}},
		{NewUsersCommand(), "users", []string{"list"}},
		{NewIAPCommand(), "iap", []string{
			"list", "create", "localizations", "create-localization", "price-points",
			"price-schedule", "create-price-schedule", "manual-prices", "submit",
		}},
		{NewScreenshotsCommand(), "screenshots", []string{"get", "upload", "delete"}},
		{NewSubscriptionGroupsCommand(), "subscription-groups", []string{
			"list", "get", "create", "delete", "localizations", "subscriptions",
		}},
		{NewSubscriptionsCommand(), "subscriptions", []string{"create"}},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)

			var names []string
			for _, sub := range tt.cmd.Commands() {
				names = append(names, sub.Name())
				assert.NotNil(t, sub.RunE, sub.Name())
			}

			assert.ElementsMatch(t, tt.subcommands, names)
		})
	}
}

func TestCommandFlags(t *testing.T) {
	subscriptionsCreate := newSubscriptionsCreateCommand()
	period := subscriptionsCreate.Flags().Lookup("period")
	require.NotNil(t, period)
	assert.Equal(t, "ONE_MONTH", period.DefValue)
	assert.Equal(t, "1", subscriptionsCreate.Flags().Lookup("group-level").DefValue)

	profilesDownload := newProfilesDownloadCommand()
	assert.NotNil(t, profilesDownload.Flags().Lookup("all"))
	assert.Equal(t, ".", profilesDownload.Flags().Lookup("dir").DefValue)

	fetch := NewFetchCommand()
	assert.Equal(t, "d", fetch.Flags().Lookup("data").Shorthand)
	assert.NotNil(t, fetch.Flags().Lookup("file"))

	for _, name := range []string{"name", "product-id", "review-note", "app-id"} {
		assert.NotNil(t, newIAPCreateCommand().Flags().Lookup(name), name)
	}
}

func TestAppsList(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/v1/apps", func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "Bearer test-token", request.Header.Get("Authorization"))
		writeDocument(writer, http.StatusOK, `{"data":[{"type":"apps","id":"1","attributes":{"name":"Example","bundleId":"com.example","sku":"EX1","primaryLocale":"en-US"}}]}`)
	})
	server := newAPIServer(t, router)

	t.Run("json", func(t *testing.T) {
		setupViper(t, server.URL, constants.FormatJSON)

		out, err := execute(t, NewAppsCommand(), "list")
		require.NoError(t, err)

		var apps []asc.Resource[asc.AppAttributes]
		require.NoError(t, json.Unmarshal([]byte(out), &apps))
		require.Len(t, apps, 1)
		assert.Equal(t, "com.example", apps[0].Attributes.BundleID)
	})

	t.Run("yaml", func(t *testing.T) {
		setupViper(t, server.URL, constants.FormatYAML)

		out, err := execute(t, NewAppsCommand(), "list")
		require.NoError(t, err)

		var apps []map[string]interface{}
		require.NoError(t, yaml.Unmarshal([]byte(out), &apps))
		require.Len(t, apps, 1)
		assert.Equal(t, "1", apps[0]["id"])
	})

	t.Run("table", func(t *testing.T) {
		setupViper(t, server.URL, constants.FormatTable)

		out, err := execute(t, NewAppsCommand(), "list")
		require.NoError(t, err)
		assert.Contains(t, out, "Example")
		assert.Contains(t, out, "EX1")
	})

	t.Run("unsupported format", func(t *testing.T) {
		setupViper(t, server.URL, "xml")

		_, err := execute(t, NewAppsCommand(), "list")
		require.ErrorIs(t, err, constants.ErrUnsupportedOutputFormat)
	})
}

func TestEmptyTable(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/v1/devices", func(writer http.ResponseWriter, request *http.Request) {
		writeDocument(writer, http.StatusOK, `{"data":[]}`)
	})
	server := newAPIServer(t, router)
	setupViper(t, server.URL, constants.FormatTable)

	out, err := execute(t, NewDevicesCommand(), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No results found")
}

func TestAPIErrorsAreReturned(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/v1/subscriptionGroups/{id}", func(writer http.ResponseWriter, request *http.Request) {
		writeDocument(writer, http.StatusNotFound, `{"errors":[{"status":"404","code":"NOT_FOUND","title":"Not found","detail":"gone"}]}`)
	})
	server := newAPIServer(t, router)
	setupViper(t, server.URL, constants.FormatJSON)

	_, err := execute(t, NewSubscriptionGroupsCommand(), "get", "missing")
	require.Error(t, err)
	assert.True(t, asc.IsNotFound(err))
}

func TestMissingCredentials(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	_, err := clientConfig()
	require.ErrorIs(t, err, constants.ErrNoCredentialsConfigured)

	viper.Set("key_id", "KEY")
	viper.Set("issuer_id", "ISSUER")
	viper.Set("private_key_path", "/keys/AuthKey_KEY.p8")
	viper.Set("app_id", "123")

	config, err := clientConfig()
	require.NoError(t, err)
	assert.Equal(t, "KEY", config.KeyID)
	assert.Equal(t, "/keys/AuthKey_KEY.p8", config.PrivateKeyPath)
	assert.Equal(t, "123", config.AppID)
	assert.Contains(t, config.UserAgent, constants.DefaultUserAgent)
}

func TestConfigSet(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	configFile := filepath.Join(t.TempDir(), "asc", "config.yml")
	viper.SetConfigFile(configFile)
	viper.Set("key_id", "EXISTING")

	out, err := execute(t, NewConfigCommand(), "set", "app_id", "987")
	require.NoError(t, err)
	assert.Contains(t, out, "Set app_id")

	data, err := os.ReadFile(configFile)
	require.NoError(t, err)

	var saved Config
	require.NoError(t, yaml.Unmarshal(data, &saved))
	assert.Equal(t, "987", saved.AppID)
	assert.Equal(t, "EXISTING", saved.KeyID)

	info, err := os.Stat(configFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(constants.ConfigFilePerm), info.Mode().Perm())

	_, err = execute(t, NewConfigCommand(), "set", "password", "x")
	require.ErrorIs(t, err, constants.ErrUnknownConfigKey)
}

func TestConfigShowMasksToken(t *testing.T) {
	setupViper(t, "https://api.example.com", constants.FormatTable)

	out, err := execute(t, NewConfigCommand(), "show")
	require.NoError(t, err)
	assert.Contains(t, out, constants.MaskedSecret)
	assert.NotContains(t, out, "test-token")
}

func TestFetch(t *testing.T) {
	var patched []byte

	router := chi.NewRouter()
	router.Get("/v1/apps", func(writer http.ResponseWriter, request *http.Request) {
		writeDocument(writer, http.StatusOK, `{"data":[]}`)
	})
	router.Patch("/v1/apps/1", func(writer http.ResponseWriter, request *http.Request) {
		patched, _ = io.ReadAll(request.Body)
		writeDocument(writer, http.StatusOK, `{"data":{"type":"apps","id":"1"}}`)
	})
	router.Get("/v1/missing", func(writer http.ResponseWriter, request *http.Request) {
		writeDocument(writer, http.StatusNotFound, `{"errors":[{"status":"404"}]}`)
	})
	server := newAPIServer(t, router)

	t.Run("prints the body", func(t *testing.T) {
		setupViper(t, server.URL, "")

		out, err := execute(t, NewFetchCommand(), "GET", "/v1/apps", "--include")
		require.NoError(t, err)
		assert.Equal(t, "HTTP 200\n{\"data\":[]}", out)
	})

	t.Run("sends data", func(t *testing.T) {
		setupViper(t, server.URL, "")

		_, err := execute(t, NewFetchCommand(), "PATCH", "/v1/apps/1", "--data", `{"data":{"id":"1"}}`)
		require.NoError(t, err)
		assert.JSONEq(t, `{"data":{"id":"1"}}`, string(patched))
	})

	t.Run("rejects invalid data", func(t *testing.T) {
		setupViper(t, server.URL, "")

		_, err := execute(t, NewFetchCommand(), "POST", "/v1/apps", "--data", "{nope")
		require.ErrorIs(t, err, constants.ErrInvalidJSONData)
	})

	t.Run("non-2xx is an error after printing", func(t *testing.T) {
		setupViper(t, server.URL, "")

		out, err := execute(t, NewFetchCommand(), "GET", "/v1/missing")
		assert.Contains(t, out, "errors")
		assert.True(t, asc.IsNotFound(err))
	})

	t.Run("method not allowed", func(t *testing.T) {
		setupViper(t, server.URL, "")

		_, err := execute(t, NewFetchCommand(), "HEAD", "/v1/apps")

		var methodErr *asc.MethodNotAllowedError
		require.ErrorAs(t, err, &methodErr)
	})
}

func TestProfilesDownloadSelection(t *testing.T) {
	setupViper(t, "https://api.example.com", "")

	_, err := execute(t, NewProfilesCommand(), "download")
	require.ErrorIs(t, err, ErrProfileSelection)

	_, err = execute(t, NewProfilesCommand(), "download", "P1", "--all")
	require.ErrorIs(t, err, ErrProfileSelection)
}

// fakeProfiles records concurrent Download calls.
type fakeProfiles struct {
	asc.ProfilesClient

	active    atomic.Int32
	maxActive atomic.Int32
	fail      string
	release   chan struct{}
	mutex     sync.Mutex
	seen      []string
}

func (f *fakeProfiles) Download(ctx context.Context, id, dir string) (string, error) {
	active := f.active.Add(1)
	defer f.active.Add(-1)

	for {
		current := f.maxActive.Load()
		if active <= current || f.maxActive.CompareAndSwap(current, active) {
			break
		}
	}

	f.mutex.Lock()
	f.seen = append(f.seen, id)
	f.mutex.Unlock()

	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if id == f.fail {
		return "", errors.New("boom")
	}

	return filepath.Join(dir, id+constants.ProfileExtension), nil
}

func TestDownloadProfiles(t *testing.T) {
	t.Run("preserves order and bounds concurrency", func(t *testing.T) {
		release := make(chan struct{})
		profiles := &fakeProfiles{release: release}
		ids := []string{"a", "b", "c", "d", "e", "f", "g"}

		done := make(chan struct{})

		var (
			paths []string
			err   error
		)

		go func() {
			defer close(done)

			paths, err = downloadProfiles(context.Background(), profiles, ids, "/out")
		}()

		close(release)
		<-done

		require.NoError(t, err)
		require.Len(t, paths, len(ids))

		for i, id := range ids {
			assert.Equal(t, filepath.Join("/out", id+".mobileprovision"), paths[i])
		}

		assert.LessOrEqual(t, profiles.maxActive.Load(), int32(constants.DefaultConcurrencyLimit))
		assert.ElementsMatch(t, ids, profiles.seen)
	})

	t.Run("returns the first failure", func(t *testing.T) {
		profiles := &fakeProfiles{fail: "b"}

		paths, err := downloadProfiles(context.Background(), profiles, []string{"a", "b", "c"}, "/out")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "downloading profile b")
		assert.Nil(t, paths)
	})

	t.Run("no ids", func(t *testing.T) {
		paths, err := downloadProfiles(context.Background(), &fakeProfiles{}, nil, "/out")
		require.NoError(t, err)
		assert.Empty(t, paths)
	})
}

func TestVersionCommand(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("output", constants.FormatJSON)

	out, err := execute(t, NewVersionCommand("1.2.3", "abc", "2026-01-01"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"1.2.3","commit":"abc","built":"2026-01-01"}`, out)
}
