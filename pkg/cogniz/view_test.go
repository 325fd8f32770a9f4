package cogniz_test

import (
	"context"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/cogniz/pkg/cogniz"
	"github.com/papercomputeco/cogniz/pkg/connection"
	testutils "github.com/papercomputeco/cogniz/pkg/utils/test"
)

var _ = Describe("LoadView", func() {
	var (
		ctx      context.Context
		server   *testutils.MockCognizServer
		settings *testutils.MockSettings
		client   *cogniz.Client
	)

	BeforeEach(func() {
		ctx = context.Background()
		server = testutils.NewMockCognizServer()
		DeferCleanup(server.Close)
		settings = testutils.NewMockSettings(server.URL)
		client = cogniz.New(settings)
		server.Handle(searchURL, http.StatusOK, listing)
	})

	It("reports an unconfigured client", func() {
		client = cogniz.New(&testutils.MockSettings{})
		view, err := client.LoadView(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(view.Configured).To(BeFalse())
		Expect(view.Items).To(BeEmpty())
	})

	It("selects the connection project on first load", func() {
		server.Handle(projectsURL, http.StatusOK, `[{"project_id":"p1","name":"Default"},{"project_id":"p2"}]`)

		view, err := client.LoadView(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(view.Configured).To(BeTrue())
		Expect(view.Active.ProjectID).To(Equal("p1"))
		Expect(settings.Selected).To(Equal(&connection.SelectedProject{ProjectID: "p1", ProjectName: "Default"}))
		Expect(view.Items).To(HaveLen(2))
		Expect(server.Last().Query).To(HaveKeyWithValue("limit", "50"))
	})

	It("resets a selection that is no longer listed", func() {
		settings.Selected = &connection.SelectedProject{ProjectID: "gone"}
		server.Handle(projectsURL, http.StatusOK, `[{"project_id":"p7","name":"Seven"}]`)

		view, err := client.LoadView(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(view.Active).To(Equal(connection.SelectedProject{ProjectID: "p7", ProjectName: "Seven"}))
		Expect(settings.Selected.ProjectID).To(Equal("p7"))
	})

	It("falls back to the connection project when projects fail", func() {
		server.Handle(projectsURL, http.StatusInternalServerError, `{"message":"db down"}`)

		view, err := client.LoadView(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(view.ProjectError).To(Equal("db down"))
		Expect(view.Projects).To(HaveLen(1))
		Expect(view.Projects[0].ID).To(Equal("p1"))
	})

	It("reports memory failures in the view", func() {
		server.Handle(projectsURL, http.StatusOK, `[{"project_id":"p1"}]`)
		server.Handle(searchURL, http.StatusServiceUnavailable, "")

		view, err := client.LoadView(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(view.MemoryError).To(Equal("Failed to search memories (HTTP 503)"))
	})

	It("drops the cache when switching projects", func() {
		server.Handle(projectsURL, http.StatusOK, `[{"project_id":"p1"}]`)
		_, err := client.LoadView(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(client.Cache().Snapshot()).NotTo(BeNil())

		Expect(client.SelectProject(connection.SelectedProject{ProjectID: "p2"})).To(Succeed())
		Expect(client.Cache().Snapshot()).To(BeNil())
		Expect(settings.Selected.ProjectID).To(Equal("p2"))
	})
})
