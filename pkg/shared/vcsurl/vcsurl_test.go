package vcsurl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchRemoteForms(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected RemoteDescriptor
	}{
		{
			name:     "GitHub SSH URL",
			input:    "git@github.com:acme/widgets.git",
			expected: RemoteDescriptor{Host: "github.com", Owner: "acme", Repository: "widgets"},
		},
		{
			name:     "GitHub SSH URL without suffix",
			input:    "git@github.com:acme/widgets",
			expected: RemoteDescriptor{Host: "github.com", Owner: "acme", Repository: "widgets"},
		},
		{
			name:     "GitHub HTTPS URL",
			input:    "https://github.com/acme/widgets.git",
			expected: RemoteDescriptor{Host: "github.com", Owner: "acme", Repository: "widgets"},
		},
		{
			name:     "GitHub HTTPS URL with trailing slash",
			input:    "https://github.com/acme/widgets/",
			expected: RemoteDescriptor{Host: "github.com", Owner: "acme", Repository: "widgets"},
		},
		{
			name:     "GitHub HTTPS URL with suffix and trailing slash",
			input:    "https://github.com/acme/widgets.git/",
			expected: RemoteDescriptor{Host: "github.com", Owner: "acme", Repository: "widgets"},
		},
		{
			name:     "Bitbucket HTTPS URL with user info",
			input:    "https://alice@bitbucket.org/acme/widgets.git",
			expected: RemoteDescriptor{Host: "bitbucket.org", Owner: "acme", Repository: "widgets"},
		},
		{
			name:     "owner and repository keep case",
			input:    "git@GitHub.com:Acme-Corp/Widget_Kit.git",
			expected: RemoteDescriptor{Host: "GitHub.com", Owner: "Acme-Corp", Repository: "Widget_Kit"},
		},
		{
			name:     "unknown host still matches",
			input:    "https://gitlab.com/acme/widgets.git",
			expected: RemoteDescriptor{Host: "gitlab.com", Owner: "acme", Repository: "widgets"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Match(tc.input)
			require.True(t, ok)
			assert.Equal(t, tc.expected.Host, got.Host, "Host mismatch")
			assert.Equal(t, tc.expected.Owner, got.Owner, "Owner mismatch")
			assert.Equal(t, tc.expected.Repository, got.Repository, "Repository mismatch")
			assert.Equal(t, tc.input, got.Raw, "Raw input mismatch")
		})
	}
}

func TestMatchIsIndependentOfSuffixAndSlash(t *testing.T) {
	variants := []string{
		"git@github.com:acme/widgets",
		"git@github.com:acme/widgets.git",
		"git@github.com:acme/widgets/",
		"git@github.com:acme/widgets.git/",
		"https://github.com/acme/widgets",
		"https://github.com/acme/widgets.git",
		"https://github.com/acme/widgets/",
		"https://github.com/acme/widgets.git/",
	}

	for _, v := range variants {
		got, ok := Match(v)
		require.True(t, ok, v)
		assert.Equal(t, "github.com", got.Host, v)
		assert.Equal(t, "acme/widgets", got.FullName(), v)
	}
}

func TestMatchRejects(t *testing.T) {
	for _, input := range []string{
		"",
		"http://github.com/acme/widgets.git",
		"ssh://git@github.com/acme/widgets.git",
		"https://github.com/acme",
		"https://github.com/acme/widgets/tree/main",
		"/srv/git/widgets.git",
		"git@github.com:acme/widgets.gitx",
	} {
		_, ok := Match(input)
		assert.False(t, ok, input)
	}
}

func TestPlatformForHost(t *testing.T) {
	assert.Equal(t, GitHub, PlatformForHost("github.com"))
	assert.Equal(t, GitHub, PlatformForHost("GitHub.COM"))
	assert.Equal(t, Bitbucket, PlatformForHost("bitbucket.org"))
	assert.Equal(t, SourceForge, PlatformForHost("sourceforge.net"))
	assert.Equal(t, UnknownPlatform, PlatformForHost("gitlab.com"))
	assert.Equal(t, "unknown", UnknownPlatform.String())
}

func TestMatchFirst(t *testing.T) {
	remotes := []Remote{
		{Name: "local", URL: "/srv/git/widgets.git"},
		{Name: "origin", URL: "git@github.com:acme/widgets.git"},
		{Name: "upstream", URL: "https://bitbucket.org/acme/widgets"},
	}

	d, remote := MatchFirst(remotes)
	require.NotNil(t, d)
	assert.Equal(t, "origin", remote.Name)
	assert.Equal(t, "github.com", d.Host)

	d, remote = MatchFirst(remotes[:1])
	assert.Nil(t, d)
	assert.Nil(t, remote)
}

func TestNormalize(t *testing.T) {
	got, err := Normalize("git@github.com:acme/widgets.git")
	require.NoError(t, err)
	assert.Equal(t, "git@github.com:acme/widgets.git", got)

	got, err = Normalize("http://github.com/acme/widgets")
	require.NoError(t, err)
	d, ok := Match(got)
	require.True(t, ok)
	assert.Equal(t, "acme/widgets", d.FullName())

	_, err = Normalize("not a url")
	assert.Error(t, err)
}
