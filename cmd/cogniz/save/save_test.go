package savecmder_test

import (
	"bytes"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	savecmder "github.com/papercomputeco/cogniz/cmd/cogniz/save"
	testutils "github.com/papercomputeco/cogniz/pkg/utils/test"
)

const storePath = "/wp-json/memory/v1/store"

var _ = Describe("Save Command", func() {
	var (
		tmpDir string
		remote *testutils.MockCognizServer
		out    *bytes.Buffer
	)

	run := func(input string, args ...string) error {
		cmd := savecmder.NewSaveCmd()
		cmd.PersistentFlags().String("config-dir", "", "Override path to .cogniz/ config directory")
		cmd.SetIn(strings.NewReader(input))
		cmd.SetOut(out)
		cmd.SetErr(out)
		cmd.SetArgs(append(args, "--config-dir", tmpDir))
		return cmd.Execute()
	}

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "cogniz-save-test-*")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, tmpDir)

		GinkgoT().Setenv("COGNIZ_API_KEY", "")
		GinkgoT().Setenv("COGNIZ_TELEMETRY_PROVIDER", "none")

		remote = testutils.NewMockCognizServer()
		DeferCleanup(remote.Close)
		remote.Handle(storePath, http.StatusOK, `{"memory_id":"m-1"}`)

		Expect(testutils.ConfigureDir(tmpDir, remote.URL, "p1", "k")).To(Succeed())
		out = &bytes.Buffer{}
	})

	It("saves the arguments as a selection", func() {
		Expect(run("", "remember", "the", "milk", "--category", "todo")).To(Succeed())

		req := remote.Last()
		Expect(req.Method).To(Equal(http.MethodPost))
		Expect(req.Body).To(HaveKeyWithValue("project_id", "p1"))
		Expect(req.Body).To(HaveKeyWithValue("category", "todo"))
		Expect(req.Body["content"]).To(HavePrefix("Captured Selection:\nremember the milk\n"))
		Expect(req.Body["metadata"]).To(HaveKeyWithValue("origin", "selection"))
		Expect(out.String()).To(ContainSubstring("Saved to Cogniz"))
		Expect(out.String()).To(ContainSubstring("#m-1"))
	})

	It("captures a file with its extension as the language", func() {
		file := filepath.Join(tmpDir, "main.go")
		Expect(os.WriteFile(file, []byte("package main\n"), 0o600)).To(Succeed())

		Expect(run("", "--file", file)).To(Succeed())

		content := remote.Last().Body["content"]
		Expect(content).To(ContainSubstring("Language: go"))
		Expect(content).To(ContainSubstring("Source: " + file))
	})

	It("reads piped input", func() {
		Expect(run("from a pipe\n")).To(Succeed())
		Expect(remote.Last().Body["content"]).To(ContainSubstring("from a pipe"))
	})

	It("saves the clipboard with its source label", func() {
		DeferCleanup(savecmder.SetClipboardReader(func() (string, error) { return "copied text", nil }))

		Expect(run("", "--clipboard", "--source", "browser note")).To(Succeed())

		req := remote.Last()
		Expect(req.Body["content"]).To(HavePrefix("Captured Clipboard:\ncopied text\n\nSource: browser note\n"))
		Expect(req.Body["metadata"]).To(HaveKeyWithValue("source", "browser note"))
	})

	It("refuses an empty clipboard without calling Cogniz", func() {
		DeferCleanup(savecmder.SetClipboardReader(func() (string, error) { return "  ", nil }))

		Expect(run("", "--clipboard")).To(MatchError(ContainSubstring("clipboard is empty")))
		Expect(remote.Count(storePath)).To(Equal(0))
	})

	It("reports clipboard failures", func() {
		DeferCleanup(savecmder.SetClipboardReader(func() (string, error) { return "", errors.New("no xclip") }))

		Expect(run("", "--clipboard")).To(MatchError(ContainSubstring("no xclip")))
	})

	It("saves to an explicit project", func() {
		Expect(run("", "note", "--project", "p9")).To(Succeed())
		Expect(remote.Last().Body).To(HaveKeyWithValue("project_id", "p9"))
	})

	It("surfaces remote errors", func() {
		remote.Handle(storePath, http.StatusUnauthorized, `{"message":"Invalid API key"}`)

		Expect(run("", "note")).To(MatchError(ContainSubstring("Invalid API key")))
	})
})
