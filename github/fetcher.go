// Package github resolves repository snapshots. A snapshot is fetched
// as a tarball, first from the versioned API endpoint using a bearer
// token, then from the public codeload endpoint. The reference string
// is passed through verbatim; branch, tag and commit SHA all work the
// same way and an unresolvable reference surfaces as a fetch failure.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/torqsecure/sbomgen/cloud"
	"github.com/torqsecure/sbomgen/common"
	"github.com/torqsecure/sbomgen/settings"
)

const apiVersion = `2022-11-28`

type Origin struct {
	ApiEndpoint      string
	CodeloadEndpoint string
	Token            string
}

func DefaultOrigin() Origin {
	return Origin{
		ApiEndpoint:      settings.Global.GithubApiEndpoint(),
		CodeloadEndpoint: settings.Global.CodeloadEndpoint(),
		Token:            settings.Global.Token(),
	}
}

type strategy struct {
	name    string
	attempt func(ctx context.Context, filename string) error
}

func (it Origin) apiTarball(owner, name, ref string) strategy {
	link := fmt.Sprintf("%s/repos/%s/%s/tarball/%s",
		it.ApiEndpoint,
		url.PathEscape(owner),
		url.PathEscape(name),
		url.PathEscape(ref))
	headers := map[string]string{
		"X-GitHub-Api-Version": apiVersion,
	}
	if len(it.Token) > 0 {
		headers["Authorization"] = fmt.Sprintf("Bearer %s", it.Token)
	}
	return strategy{
		name: "authenticated api",
		attempt: func(ctx context.Context, filename string) error {
			return cloud.Download(ctx, link, headers, filename)
		},
	}
}

func (it Origin) codeload(owner, name, ref string) strategy {
	link := fmt.Sprintf("%s/%s/%s/tar.gz/%s",
		it.CodeloadEndpoint,
		url.PathEscape(owner),
		url.PathEscape(name),
		url.PathEscape(ref))
	return strategy{
		name: "public codeload",
		attempt: func(ctx context.Context, filename string) error {
			return cloud.Download(ctx, link, nil, filename)
		},
	}
}

// Snapshot downloads the repository tree at given reference into the
// target file. Strategies are tried in order and the first success
// wins; each strategy is attempted exactly once. Returns the name of
// the strategy that produced the snapshot.
func (it Origin) Snapshot(ctx context.Context, owner, name, ref, filename string) (string, error) {
	strategies := []strategy{
		it.apiTarball(owner, name, ref),
		it.codeload(owner, name, ref),
	}
	failures := make([]error, 0, len(strategies))
	for _, candidate := range strategies {
		common.Debug("Fetching %s/%s@%s using %q strategy.", owner, name, ref, candidate.name)
		err := candidate.attempt(ctx, filename)
		if err == nil {
			common.Timeline("snapshot of %s/%s@%s fetched [%s]", owner, name, ref, candidate.name)
			return candidate.name, nil
		}
		common.Log("Fetch strategy %q failed, reason: %v", candidate.name, err)
		failures = append(failures, fmt.Errorf("%s: %w", candidate.name, err))
	}
	return "", fmt.Errorf("could not fetch %s/%s@%s: %w", owner, name, ref, errors.Join(failures...))
}
