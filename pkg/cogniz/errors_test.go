package cogniz_test

import (
	"context"
	"errors"
	"net/http"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/cogniz/pkg/cogniz"
	testutils "github.com/papercomputeco/cogniz/pkg/utils/test"
)

var _ = Describe("Remote errors", func() {
	var (
		server *testutils.MockCognizServer
		client *cogniz.Client
	)

	BeforeEach(func() {
		server = testutils.NewMockCognizServer()
		DeferCleanup(server.Close)
		client = cogniz.New(testutils.NewMockSettings(server.URL))
	})

	storeErr := func() *cogniz.RemoteError {
		_, err := client.Store(context.Background(), "hello", cogniz.StoreOptions{})
		Expect(err).To(HaveOccurred())
		var remote *cogniz.RemoteError
		Expect(errors.As(err, &remote)).To(BeTrue())
		return remote
	}

	It("uses a nested JSON message", func() {
		server.Handle("/wp-json/memory/v1/store", http.StatusUnauthorized, `{"code":"x","error":{"detail":"  Invalid API key "}}`)
		remote := storeErr()
		Expect(remote.Status).To(Equal(http.StatusUnauthorized))
		Expect(remote.Message).To(Equal("Invalid API key"))
	})

	It("uses the first string of a message array", func() {
		server.Handle("/wp-json/memory/v1/store", http.StatusBadRequest, `{"error":["", "quota exceeded"]}`)
		Expect(storeErr().Message).To(Equal("quota exceeded"))
	})

	It("strips HTML bodies", func() {
		server.Handle("/wp-json/memory/v1/store", http.StatusBadGateway,
			`<html><head><style>p{}</style><script>alert(1)</script></head><body><h1>Bad&nbsp;Gateway</h1><p>try   later</p></body></html>`)
		Expect(storeErr().Message).To(Equal("Failed to store memory: Bad Gateway try later"))
	})

	It("caps the body snippet", func() {
		server.Handle("/wp-json/memory/v1/store", http.StatusInternalServerError, strings.Repeat("x", 500))
		Expect(storeErr().Message).To(HaveLen(len("Failed to store memory: ") + 200))
	})

	It("falls back to the status code", func() {
		server.Handle("/wp-json/memory/v1/store", http.StatusInternalServerError, "")
		Expect(storeErr().Message).To(Equal("Failed to store memory (HTTP 500)"))
	})

	It("reports empty successful responses", func() {
		server.Handle("/wp-json/memory/v1/store", http.StatusOK, "")
		Expect(storeErr().Message).To(Equal("Unexpected response from Cogniz.: received an empty response."))
	})

	It("reports unparseable successful responses", func() {
		server.Handle("/wp-json/memory/v1/search", http.StatusOK, "<p>maintenance</p>")
		_, err := client.Search(context.Background(), "x", cogniz.SearchOptions{})
		Expect(err).To(MatchError("Unexpected response from Cogniz while searching.: maintenance"))
	})
})
