package operations_test

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/torqsecure/sbomgen/artifact"
	"github.com/torqsecure/sbomgen/common"
	"github.com/torqsecure/sbomgen/hamlet"
	"github.com/torqsecure/sbomgen/operations"
)

var snapshotServer *httptest.Server

func repositoryTarball() []byte {
	buffer := new(bytes.Buffer)
	zipper := gzip.NewWriter(buffer)
	writer := tar.NewWriter(zipper)
	files := []struct {
		name, content string
	}{
		{"widget-main/go.mod", "module example.com/widget\n"},
		{"widget-main/main.go", "package main\n"},
	}
	for _, file := range files {
		writer.WriteHeader(&tar.Header{
			Name: file.name,
			Mode: 0o644,
			Size: int64(len(file.content)),
		})
		writer.Write([]byte(file.content))
	}
	writer.Close()
	zipper.Close()
	return buffer.Bytes()
}

func TestMain(m *testing.M) {
	home, err := os.MkdirTemp("", "sbomgen-operations-")
	if err != nil {
		panic(err)
	}
	os.Setenv(common.HomeVariable, home)
	common.ControllerType = "unittest"

	snapshotServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(repositoryTarball())
	}))

	blob := fmt.Sprintf("github:\n  api-endpoint: %q\n  codeload-endpoint: %q\n",
		snapshotServer.URL, snapshotServer.URL)
	err = os.WriteFile(common.SettingsFile(), []byte(blob), 0o644)
	if err != nil {
		panic(err)
	}

	code := m.Run()
	snapshotServer.Close()
	os.RemoveAll(home)
	os.Exit(code)
}

type cannedEngine struct {
	document string
	failure  error
}

func (it *cannedEngine) Produce(ctx context.Context, directory, output string) error {
	if it.failure != nil {
		return it.failure
	}
	return os.WriteFile(output, []byte(it.document), 0o644)
}

type recordingStore struct {
	mutex     sync.Mutex
	published map[string][]byte
	refusal   error
}

func newRecordingStore() *recordingStore {
	return &recordingStore{published: make(map[string][]byte)}
}

func (it *recordingStore) Publish(ctx context.Context, name string, payload []byte, contentType string) (*artifact.Receipt, error) {
	it.mutex.Lock()
	defer it.mutex.Unlock()
	if it.refusal != nil {
		return nil, it.refusal
	}
	it.published[name] = payload
	return &artifact.Receipt{
		Bucket:  "sboms",
		Key:     name,
		Size:    int64(len(payload)),
		Expires: time.Now().Add(7 * 24 * time.Hour),
	}, nil
}

func (it *recordingStore) Link(ctx context.Context, name string) (string, error) {
	return "https://artifacts.local/" + name, nil
}

const scannedDocument = `{
	"bomFormat": "CycloneDX",
	"specVersion": "1.5",
	"components": [{"name": "cobra"}, {"name": "viper"}, {"name": "uuid"}]
}`

func TestWholePipelineProducesEnrichedArtifact(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	var reported operations.CompletionReport
	callbacks := 0
	callback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callbacks += 1
		must_be.Equal("application/json", r.Header.Get("Content-Type"))
		must_be.Nil(json.NewDecoder(r.Body).Decode(&reported))
	}))
	defer callback.Close()

	store := newRecordingStore()
	request := &operations.JobRequest{
		Owner:       "torqsecure",
		Name:        "widget",
		CallbackURL: callback.URL,
		SbomID:      "abc123",
	}
	result, err := operations.ProduceSbom(context.Background(), request, &cannedEngine{document: scannedDocument}, store)
	must_be.Nil(err)
	wont_be.Nil(result)

	must_be.Equal(operations.StatusSuccess, result.Report.Status)
	must_be.Equal(3, result.Report.ComponentCount)
	must_be.Equal("torqsecure/widget", result.Report.Repository)
	must_be.Equal("main", result.Report.Reference)
	must_be.True(result.Survey.Conforming)
	must_be.Equal("https://artifacts.local/sbom-abc123.json", result.Location)

	payload, ok := store.published["sbom-abc123.json"]
	must_be.True(ok)
	document := make(map[string]interface{})
	must_be.Nil(json.Unmarshal(payload, &document))
	metadata := document["metadata"].(map[string]interface{})
	must_be.Equal(5, len(metadata["properties"].([]interface{})))

	must_be.Equal(1, callbacks)
	must_be.Equal("abc123", reported.SbomID)
	must_be.Equal(operations.StatusSuccess, reported.Status)
	must_be.Equal(3, reported.ComponentCount)
	must_be.True(len(reported.RunID) > 0)
}

func TestInvalidRequestFailsBeforeAnyNetworkWork(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	store := newRecordingStore()
	request := &operations.JobRequest{Owner: "", Name: "widget"}
	result, err := operations.ProduceSbom(context.Background(), request, &cannedEngine{document: scannedDocument}, store)
	must_be.Nil(result)
	wont_be.Nil(err)
	must_be.Equal(1, operations.ExitCode(err))
	must_be.Equal(0, len(store.published))
}

func TestMissingCallbackMeansNoNotification(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	store := newRecordingStore()
	request := &operations.JobRequest{Owner: "torqsecure", Name: "widget"}
	result, err := operations.ProduceSbom(context.Background(), request, &cannedEngine{document: scannedDocument}, store)
	must_be.Nil(err)
	must_be.Equal(operations.StatusSuccess, result.Report.Status)
	must_be.Equal(1, len(store.published))
}

func TestRefusedCallbackDoesNotFailTheRun(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	callback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer callback.Close()

	store := newRecordingStore()
	request := &operations.JobRequest{Owner: "torqsecure", Name: "widget", CallbackURL: callback.URL}
	result, err := operations.ProduceSbom(context.Background(), request, &cannedEngine{document: scannedDocument}, store)
	must_be.Nil(err)
	must_be.Equal(operations.StatusSuccess, result.Report.Status)
}

func TestScannerFailureStopsBeforePublishing(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	callbacks := 0
	callback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callbacks += 1
	}))
	defer callback.Close()

	store := newRecordingStore()
	request := &operations.JobRequest{Owner: "torqsecure", Name: "widget", CallbackURL: callback.URL}
	engine := &cannedEngine{failure: fmt.Errorf("scanner exploded")}
	result, err := operations.ProduceSbom(context.Background(), request, engine, store)
	must_be.Nil(result)
	wont_be.Nil(err)
	must_be.Equal(4, operations.ExitCode(err))
	must_be.Equal(0, len(store.published))
	must_be.Equal(0, callbacks)
}

func TestPublishFailureStillNotifiesWithFailedStatus(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	var reported operations.CompletionReport
	callback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&reported)
	}))
	defer callback.Close()

	store := newRecordingStore()
	store.refusal = fmt.Errorf("bucket on strike")
	request := &operations.JobRequest{Owner: "torqsecure", Name: "widget", CallbackURL: callback.URL}
	result, err := operations.ProduceSbom(context.Background(), request, &cannedEngine{document: scannedDocument}, store)
	wont_be.Nil(err)
	must_be.Equal(7, operations.ExitCode(err))
	wont_be.Nil(result)
	must_be.Equal(operations.StatusFailed, result.Report.Status)
	must_be.Equal(operations.StatusFailed, reported.Status)
	must_be.Equal(3, reported.ComponentCount)
}

func TestMalformedScannerOutputIsItsOwnFailure(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	store := newRecordingStore()
	request := &operations.JobRequest{Owner: "torqsecure", Name: "widget"}
	engine := &cannedEngine{document: "not json"}
	result, err := operations.ProduceSbom(context.Background(), request, engine, store)
	must_be.Nil(result)
	wont_be.Nil(err)
	must_be.Equal(5, operations.ExitCode(err))
}

func TestWithoutSbomIdTheRunIdNamesTheArtifact(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	store := newRecordingStore()
	request := &operations.JobRequest{Owner: "torqsecure", Name: "widget"}
	result, err := operations.ProduceSbom(context.Background(), request, &cannedEngine{document: scannedDocument}, store)
	must_be.Nil(err)
	must_be.Equal(1, len(store.published))
	expected := artifact.ObjectName(result.Report.RunID)
	_, ok := store.published[expected]
	must_be.True(ok)
}
