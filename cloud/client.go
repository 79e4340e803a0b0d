package cloud

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/torqsecure/sbomgen/common"
	"github.com/torqsecure/sbomgen/settings"
	"github.com/torqsecure/sbomgen/xviper"
)

type internalClient struct {
	endpoint string
	client   *http.Client
	critical bool
}

type Request struct {
	Url           string
	Headers       map[string]string
	ContentLength int64
	Body          io.Reader
	Stream        io.Writer
}

type Response struct {
	Status  int
	Err     error
	Body    []byte
	Elapsed common.Duration
}

type Client interface {
	Endpoint() string
	NewRequest(string) *Request
	Head(request *Request) *Response
	Get(request *Request) *Response
	Post(request *Request) *Response
	WithContext(context.Context) Client
	WithTimeout(time.Duration) Client
	Uncritical() Client
}

func EnsureHttps(endpoint string) (string, error) {
	nice := strings.TrimRight(strings.TrimSpace(endpoint), "/")
	parsed, err := url.Parse(nice)
	if err != nil {
		return "", err
	}
	if parsed.Host == "127.0.0.1" || strings.HasPrefix(parsed.Host, "127.0.0.1:") {
		return nice, nil
	}
	if parsed.Scheme != "https" {
		return "", fmt.Errorf("Endpoint '%s' must start with https:// prefix.", nice)
	}
	return nice, nil
}

// NewClient accepts any endpoint verbatim. Callback endpoints are
// caller supplied and may be plain http inside private networks.
func NewClient(endpoint string) (Client, error) {
	return &internalClient{
		endpoint: strings.TrimRight(strings.TrimSpace(endpoint), "/"),
		client:   &http.Client{Transport: settings.Global.ConfiguredHttpTransport()},
		critical: true,
	}, nil
}

// NewSecureClient requires a https endpoint, except for loopback.
func NewSecureClient(endpoint string) (Client, error) {
	https, err := EnsureHttps(endpoint)
	if err != nil {
		return nil, err
	}
	return &internalClient{
		endpoint: https,
		client:   &http.Client{Transport: settings.Global.ConfiguredHttpTransport()},
		critical: true,
	}, nil
}

func (it *internalClient) Uncritical() Client {
	it.critical = false
	return it
}

func (it *internalClient) WithTimeout(timeout time.Duration) Client {
	return &internalClient{
		endpoint: it.endpoint,
		client: &http.Client{
			Transport: settings.Global.ConfiguredHttpTransport(),
			Timeout:   timeout,
		},
		critical: it.critical,
	}
}

func (it *internalClient) WithContext(ctx context.Context) Client {
	return &contextClient{it, ctx}
}

func (it *internalClient) Endpoint() string {
	return it.endpoint
}

func (it *internalClient) does(ctx context.Context, method string, request *Request) *Response {
	stopwatch := common.Stopwatch("stopwatch")
	response := new(Response)
	url := it.Endpoint() + request.Url
	common.Trace("Doing %s %s", method, url)
	defer func() {
		response.Elapsed = stopwatch.Elapsed()
		common.Trace("%s %s took %s", method, url, response.Elapsed)
	}()
	httpRequest, err := http.NewRequestWithContext(ctx, method, url, request.Body)
	if err != nil {
		response.Status = 9001
		response.Err = err
		return response
	}
	if request.ContentLength > 0 {
		httpRequest.ContentLength = request.ContentLength
	}
	if xviper.CanTrack() {
		httpRequest.Header.Add("torqsecure-installation-id", xviper.InstallationIdentity())
	}
	httpRequest.Header.Add("User-Agent", common.UserAgent())
	for name, value := range request.Headers {
		httpRequest.Header.Add(name, value)
	}
	httpResponse, err := it.client.Do(httpRequest)
	if err != nil {
		if it.critical {
			common.Error("http.Do", err)
		} else {
			common.Uncritical("http.Do", err)
		}
		response.Status = 9002
		response.Err = err
		return response
	}
	defer httpResponse.Body.Close()
	response.Status = httpResponse.StatusCode
	if request.Stream != nil {
		io.Copy(request.Stream, httpResponse.Body)
	} else {
		response.Body, response.Err = io.ReadAll(httpResponse.Body)
	}
	if common.DebugFlag() {
		body := "ignore"
		if response.Status > 399 {
			body = string(response.Body)
		}
		common.Debug("%v %v => %v (%v)", method, url, response.Status, body)
	}
	return response
}

func (it *internalClient) NewRequest(url string) *Request {
	return &Request{
		Url:     url,
		Headers: make(map[string]string),
	}
}

func (it *internalClient) Head(request *Request) *Response {
	return it.does(context.Background(), "HEAD", request)
}

func (it *internalClient) Get(request *Request) *Response {
	return it.does(context.Background(), "GET", request)
}

func (it *internalClient) Post(request *Request) *Response {
	return it.does(context.Background(), "POST", request)
}

type contextClient struct {
	*internalClient
	ctx context.Context
}

func (it *contextClient) Head(request *Request) *Response {
	return it.does(it.ctx, "HEAD", request)
}

func (it *contextClient) Get(request *Request) *Response {
	return it.does(it.ctx, "GET", request)
}

func (it *contextClient) Post(request *Request) *Response {
	return it.does(it.ctx, "POST", request)
}
