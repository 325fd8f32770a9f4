package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/cogniz/pkg/cogniz"
	cognizlogger "github.com/papercomputeco/cogniz/pkg/logger"
	"github.com/papercomputeco/cogniz/pkg/memory"
)

// fakeMemories is an in-memory Memories.
type fakeMemories struct {
	records  []memory.Record
	projects []memory.Project
	err      error

	stored     []string
	storeOpts  cogniz.StoreOptions
	searchOpts cogniz.SearchOptions
	query      string
}

func (f *fakeMemories) Search(_ context.Context, query string, opts cogniz.SearchOptions) ([]memory.Record, error) {
	f.query = query
	f.searchOpts = opts
	return f.records, f.err
}

func (f *fakeMemories) ListRecent(_ context.Context, limit int, _ string) ([]memory.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit > 0 && len(f.records) > limit {
		return f.records[:limit], nil
	}
	return f.records, nil
}

func (f *fakeMemories) Store(_ context.Context, content string, opts cogniz.StoreOptions) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.stored = append(f.stored, content)
	f.storeOpts = opts
	return "m-1", nil
}

func (f *fakeMemories) ListProjects(_ context.Context) ([]memory.Project, error) {
	return f.projects, f.err
}

func textOf(result *mcp.CallToolResult) string {
	Expect(result.Content).To(HaveLen(1))
	text, ok := result.Content[0].(*mcp.TextContent)
	Expect(ok).To(BeTrue())
	return text.Text
}

var _ = Describe("MCP Server", func() {
	var (
		server   *Server
		memories *fakeMemories
		ctx      context.Context
	)

	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	BeforeEach(func() {
		ctx = context.Background()
		memories = &fakeMemories{
			records: []memory.Record{
				{ID: "1", Content: "Page Title: Runbook\nRestart the worker", Category: "ops_notes", StoredAt: now.Add(-2 * time.Hour).Format(time.RFC3339)},
				{ID: "2", Content: "Second memory"},
			},
			projects: []memory.Project{{ID: "p1", Name: "Default"}},
		}

		var err error
		server, err = NewServer(Config{
			Memories: memories,
			Logger:   cognizlogger.Nop(),
			Now:      func() time.Time { return now },
		})
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("NewServer", func() {
		It("returns an error when the memories client is nil", func() {
			_, err := NewServer(Config{Logger: cognizlogger.Nop()})
			Expect(err).To(MatchError(ContainSubstring("memories client is required")))
		})

		It("returns an error when logger is nil", func() {
			_, err := NewServer(Config{Memories: memories})
			Expect(err).To(MatchError(ContainSubstring("logger is required")))
		})

		It("allows an empty noop server", func() {
			s, err := NewServer(Config{Noop: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Handler()).NotTo(BeNil())
		})

		It("returns an HTTP handler", func() {
			Expect(server.Handler()).NotTo(BeNil())
		})
	})

	Describe("memory_search", func() {
		It("returns derived titles and tags", func() {
			result, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "worker", Limit: 3})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.IsError).To(BeFalse())
			Expect(memories.query).To(Equal("worker"))
			Expect(memories.searchOpts.Limit).To(Equal(3))

			Expect(output.Count).To(Equal(2))
			Expect(output.Results[0].Title).To(Equal("Runbook"))
			Expect(output.Results[0].Snippet).To(Equal("Restart the worker"))
			Expect(output.Results[0].Tags).To(Equal([]string{"Ops Notes", "2 hrs ago"}))

			var decoded MemoriesOutput
			Expect(json.Unmarshal([]byte(textOf(result)), &decoded)).To(Succeed())
			Expect(decoded.Count).To(Equal(2))
		})

		It("reports failures as tool errors", func() {
			memories.err = cogniz.ErrConfigurationMissing
			result, _, err := server.handleSearch(ctx, nil, SearchInput{Query: "x"})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.IsError).To(BeTrue())
			Expect(textOf(result)).To(ContainSubstring("not configured"))
		})
	})

	Describe("memory_recent", func() {
		It("lists recent memories", func() {
			_, output, err := server.handleRecent(ctx, nil, RecentInput{Limit: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(output.Count).To(Equal(1))
			Expect(output.Results[0].ID).To(Equal("1"))
		})
	})

	Describe("memory_store", func() {
		It("stores content", func() {
			result, output, err := server.handleStore(ctx, nil, StoreInput{Content: "remember", Category: "notes"})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.IsError).To(BeFalse())
			Expect(output).To(Equal(StoreOutput{MemoryID: "m-1", Stored: true}))
			Expect(memories.stored).To(Equal([]string{"remember"}))
			Expect(memories.storeOpts.Category).To(Equal("notes"))
		})

		It("requires content", func() {
			result, _, err := server.handleStore(ctx, nil, StoreInput{Content: "  "})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.IsError).To(BeTrue())
			Expect(memories.stored).To(BeEmpty())
		})
	})

	Describe("memory_projects", func() {
		It("lists projects", func() {
			_, output, err := server.handleProjects(ctx, nil, struct{}{})
			Expect(err).NotTo(HaveOccurred())
			Expect(output.Projects).To(Equal(memories.projects))
		})

		It("reports failures", func() {
			memories.err = errors.New("offline")
			result, _, err := server.handleProjects(ctx, nil, struct{}{})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.IsError).To(BeTrue())
		})
	})

	Describe("over a client session", func() {
		It("exposes the memory tools", func() {
			serverTransport, clientTransport := mcp.NewInMemoryTransports()
			_, err := server.mcpServer.Connect(ctx, serverTransport, nil)
			Expect(err).NotTo(HaveOccurred())

			client := mcp.NewClient(&mcp.Implementation{Name: "test", Version: "v0.0.1"}, nil)
			session, err := client.Connect(ctx, clientTransport, nil)
			Expect(err).NotTo(HaveOccurred())
			DeferCleanup(session.Close)

			tools, err := session.ListTools(ctx, nil)
			Expect(err).NotTo(HaveOccurred())

			var names []string
			for _, t := range tools.Tools {
				names = append(names, t.Name)
			}
			Expect(names).To(ConsistOf("memory_search", "memory_recent", "memory_store", "memory_projects"))

			result, err := session.CallTool(ctx, &mcp.CallToolParams{
				Name:      "memory_store",
				Arguments: map[string]any{"content": "via session"},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.IsError).To(BeFalse())
			Expect(memories.stored).To(ContainElement("via session"))
		})
	})
})
