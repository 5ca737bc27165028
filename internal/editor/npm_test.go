package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youjizi/proxy-manager/internal/domain"
)

var npmSettings = domain.ProxySettings{
	HTTPProxy:  "http://127.0.0.1:7890",
	HTTPSProxy: "http://127.0.0.1:7890",
}

func TestNPM_Strip(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "empty content",
			content: "",
			want:    "",
		},
		{
			name:    "no proxy lines untouched",
			content: "registry=https://registry.npmjs.org/\nsave-exact=true\n",
			want:    "registry=https://registry.npmjs.org/\nsave-exact=true",
		},
		{
			name:    "removes proxy and https-proxy lines",
			content: "registry=https://registry.npmjs.org/\nproxy=http://old:1\nhttps-proxy=http://old:1\n",
			want:    "registry=https://registry.npmjs.org/",
		},
		{
			name:    "match is case-insensitive and whitespace-tolerant",
			content: "  PROXY=http://old:1\nHttps-Proxy=http://old:1\nregistry=r\n",
			want:    "registry=r",
		},
		{
			name:    "keeps keys that merely contain proxy",
			content: "noproxy=localhost\nmy-proxy-setting=x\n",
			want:    "noproxy=localhost\nmy-proxy-setting=x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NPM{}.Strip(tt.content))
		})
	}
}

func TestNPM_Apply_ReplacesStaleProxyLine(t *testing.T) {
	content := "registry=https://registry.npmjs.org/\nproxy=http://old:1\n"

	got, err := NPM{}.Apply(content, npmSettings)
	require.NoError(t, err)

	assert.Equal(t, "registry=https://registry.npmjs.org/\nproxy=http://127.0.0.1:7890\nhttps-proxy=http://127.0.0.1:7890", got)
}

func TestNPM_Apply_Idempotent(t *testing.T) {
	once, err := NPM{}.Apply("registry=r\n", npmSettings)
	require.NoError(t, err)
	twice, err := NPM{}.Apply(once, npmSettings)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestNPM_Apply_EmptyContent(t *testing.T) {
	got, err := NPM{}.Apply("", npmSettings)
	require.NoError(t, err)
	assert.Equal(t, "proxy=http://127.0.0.1:7890\nhttps-proxy=http://127.0.0.1:7890", got)
}

func TestNPM_ApplyThenStrip_RoundTrips(t *testing.T) {
	content := "registry=https://registry.npmjs.org/\nsave-exact=true"

	applied, err := NPM{}.Apply(content, npmSettings)
	require.NoError(t, err)

	assert.Equal(t, content, NPM{}.Strip(applied))
}
