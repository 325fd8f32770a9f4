package projectscmder_test

import (
	"bytes"
	"net/http"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	projectscmder "github.com/papercomputeco/cogniz/cmd/cogniz/projects"
	"github.com/papercomputeco/cogniz/pkg/connection"
	testutils "github.com/papercomputeco/cogniz/pkg/utils/test"
)

var _ = Describe("Projects Command", func() {
	var (
		tmpDir string
		remote *testutils.MockCognizServer
		out    *bytes.Buffer
	)

	run := func(args ...string) error {
		cmd := projectscmder.NewProjectsCmd()
		cmd.PersistentFlags().String("config-dir", "", "Override path to .cogniz/ config directory")
		cmd.SetOut(out)
		cmd.SetErr(out)
		cmd.SetArgs(append(args, "--config-dir", tmpDir))
		return cmd.Execute()
	}

	selected := func() *connection.SelectedProject {
		svc, err := connection.NewService(tmpDir)
		Expect(err).NotTo(HaveOccurred())
		p, err := svc.SelectedProject()
		Expect(err).NotTo(HaveOccurred())
		return p
	}

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "cogniz-projects-test-*")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, tmpDir)

		GinkgoT().Setenv("COGNIZ_API_KEY", "")
		GinkgoT().Setenv("COGNIZ_TELEMETRY_PROVIDER", "none")

		remote = testutils.NewMockCognizServer()
		DeferCleanup(remote.Close)
		remote.Handle("/wp-json/memory/v1/projects", http.StatusOK,
			`{"projects":[{"project_id":"p1","name":"Default"},{"project_id":"p2","name":"Research","description":"papers"}]}`)

		Expect(testutils.ConfigureDir(tmpDir, remote.URL, "p1", "k")).To(Succeed())
		out = &bytes.Buffer{}
	})

	It("has list, use and reset subcommands", func() {
		cmd := projectscmder.NewProjectsCmd()
		names := []string{}
		for _, sub := range cmd.Commands() {
			names = append(names, sub.Name())
		}
		Expect(names).To(ContainElements("list", "use", "reset"))
	})

	It("lists projects", func() {
		Expect(run()).To(Succeed())
		Expect(out.String()).To(ContainSubstring("Default"))
		Expect(out.String()).To(ContainSubstring("Research"))
		Expect(out.String()).To(ContainSubstring("papers"))
	})

	It("selects a listed project", func() {
		Expect(run("use", "p2")).To(Succeed())
		Expect(selected()).To(Equal(&connection.SelectedProject{ProjectID: "p2", ProjectName: "Research"}))
		Expect(out.String()).To(ContainSubstring("Using project"))
	})

	It("refuses unknown projects", func() {
		Expect(run("use", "p404")).To(MatchError(ContainSubstring("unknown project")))
		Expect(selected()).To(BeNil())
	})

	It("clears the selection", func() {
		Expect(run("use", "p2")).To(Succeed())
		Expect(run("reset")).To(Succeed())
		Expect(selected()).To(BeNil())
	})

	It("requires a project id for use", func() {
		Expect(run("use")).NotTo(Succeed())
	})
})
