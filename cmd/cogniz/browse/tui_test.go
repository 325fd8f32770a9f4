package browsecmder

import (
	"context"
	"errors"
	"time"

	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/cogniz/pkg/cogniz"
	"github.com/papercomputeco/cogniz/pkg/connection"
	"github.com/papercomputeco/cogniz/pkg/memory"
	"github.com/papercomputeco/cogniz/pkg/telemetry"
)

type fakeSource struct {
	view      *cogniz.View
	err       error
	selected  []connection.SelectedProject
	refreshes int
}

func (f *fakeSource) LoadView(_ context.Context) (*cogniz.View, error) {
	return f.view, f.err
}

func (f *fakeSource) SelectProject(p connection.SelectedProject) error {
	f.selected = append(f.selected, p)
	f.view.Active = p
	return nil
}

func (f *fakeSource) ForceRefresh() {
	f.refreshes++
}

type recordingPublisher struct {
	events []string
}

func (r *recordingPublisher) Publish(_ context.Context, event *telemetry.Event) error {
	r.events = append(r.events, event.Name)
	return nil
}

func (r *recordingPublisher) Close() error { return nil }

func runes(s string) bubbletea.KeyMsg {
	return bubbletea.KeyMsg{Type: bubbletea.KeyRunes, Runes: []rune(s)}
}

var enter = bubbletea.KeyMsg{Type: bubbletea.KeyEnter}

var _ = Describe("Browse TUI", func() {
	var (
		source    *fakeSource
		published *recordingPublisher
		model     browseModel
	)

	// send applies msg and runs the returned command once, feeding a
	// non-batch result back into the model.
	send := func(msg bubbletea.Msg) bubbletea.Msg {
		next, cmd := model.Update(msg)
		model = next.(browseModel)
		if cmd == nil {
			return nil
		}
		return cmd()
	}

	load := func() {
		next, _ := model.Update(viewLoadedMsg{view: source.view})
		model = next.(browseModel)
	}

	BeforeEach(func() {
		source = &fakeSource{view: &cogniz.View{
			Configured: true,
			Projects: []memory.Project{
				{ID: "p1", Name: "Default"},
				{ID: "p2", Name: "Research"},
			},
			Active: connection.SelectedProject{ProjectID: "p1", ProjectName: "Default"},
			Items: []memory.Record{
				{ID: "m1", Content: "Retry policy\nUse exponential backoff.", Category: "notes"},
				{ID: "m2", Content: "Connection pool sizing"},
			},
		}}
		published = &recordingPublisher{}
		tracker := telemetry.NewTracker(published, nil)
		model = newBrowseModel(context.Background(), source, tracker, newBrowseStyles(lipgloss.DefaultRenderer()), time.Now)
	})

	It("shows a loading state until the view arrives", func() {
		Expect(model.View()).To(ContainSubstring("Loading memories..."))

		msg := loadViewCmd(context.Background(), source, false)()
		Expect(msg).To(BeAssignableToTypeOf(viewLoadedMsg{}))
		next, _ := model.Update(msg)
		model = next.(browseModel)

		Expect(model.loading).To(BeFalse())
		Expect(model.cards).To(HaveLen(2))
	})

	It("renders the active project and memory cards", func() {
		load()

		out := model.View()
		Expect(out).To(ContainSubstring("Default"))
		Expect(out).To(ContainSubstring("Retry policy"))
		Expect(out).To(ContainSubstring("Connection pool sizing"))
	})

	It("asks for configuration when there is no connection", func() {
		source.view = &cogniz.View{}
		load()

		Expect(model.View()).To(ContainSubstring("Run 'cogniz configure'"))
	})

	It("shows listing failures in place of the cards", func() {
		source.view.Items = nil
		source.view.MemoryError = "Cogniz API error (500): boom"
		source.view.ProjectError = "projects down"
		load()

		out := model.View()
		Expect(out).To(ContainSubstring("Cogniz API error (500): boom"))
		Expect(out).To(ContainSubstring("Projects unavailable: projects down"))
	})

	It("shows the empty state", func() {
		source.view.Items = nil
		load()

		Expect(model.View()).To(ContainSubstring("No memories yet."))
	})

	It("keeps the cursor within the cards", func() {
		load()

		send(runes("k"))
		Expect(model.cursor).To(Equal(0))
		send(runes("j"))
		send(runes("j"))
		Expect(model.cursor).To(Equal(1))
	})

	It("opens the selected memory in full and returns to the list", func() {
		load()

		send(enter)
		Expect(model.mode).To(Equal(modeDetail))
		Expect(model.View()).To(ContainSubstring("exponential backoff"))

		send(bubbletea.KeyMsg{Type: bubbletea.KeyEsc})
		Expect(model.mode).To(Equal(modeList))
	})

	It("switches projects and reloads", func() {
		load()

		send(runes("p"))
		Expect(model.mode).To(Equal(modeProjects))
		Expect(model.View()).To(ContainSubstring("Research"))

		send(runes("j"))
		msg := send(enter)
		Expect(msg).To(Equal(projectSelectedMsg{project: connection.SelectedProject{ProjectID: "p2", ProjectName: "Research"}}))
		Expect(source.selected).To(HaveLen(1))

		next, cmd := model.Update(msg)
		model = next.(browseModel)
		Expect(cmd).NotTo(BeNil())
		Expect(model.loading).To(BeTrue())
		Expect(model.mode).To(Equal(modeList))
		Expect(model.status).To(Equal("Switched to Research"))
		Expect(published.events).To(ContainElement(telemetry.EventSelectProject))
	})

	It("does not reselect the active project", func() {
		load()

		send(runes("p"))
		Expect(send(enter)).To(BeNil())
		Expect(source.selected).To(BeEmpty())
		Expect(model.mode).To(Equal(modeList))
	})

	It("refreshes past the cache", func() {
		load()

		next, cmd := model.Update(runes("r"))
		model = next.(browseModel)
		Expect(model.loading).To(BeTrue())
		Expect(cmd).NotTo(BeNil())

		loadViewCmd(context.Background(), source, true)()
		Expect(source.refreshes).To(Equal(1))
	})

	It("reports load errors", func() {
		next, _ := model.Update(viewLoadedMsg{err: errors.New("loading connection: denied")})
		model = next.(browseModel)

		Expect(model.View()).To(ContainSubstring("loading connection: denied"))
	})

	Context("copying", func() {
		var copied string

		BeforeEach(func() {
			copied = ""
			previous := writeClipboard
			writeClipboard = func(text string) error {
				copied = text
				return nil
			}
			DeferCleanup(func() { writeClipboard = previous })
		})

		It("copies the full content of the selected memory", func() {
			load()
			send(runes("j"))

			msg := send(runes("c"))
			Expect(copied).To(Equal("Connection pool sizing"))

			send(msg)
			Expect(model.status).To(Equal("Copied memory to clipboard."))
			Expect(published.events).To(ContainElement(telemetry.EventInsertMemory))
		})

		It("reports clipboard failures", func() {
			load()
			send(copiedMsg{err: errors.New("no clipboard")})

			Expect(model.status).To(Equal("Copy failed: no clipboard"))
			Expect(published.events).To(BeEmpty())
		})
	})

	It("quits", func() {
		Expect(send(runes("q"))).To(Equal(bubbletea.QuitMsg{}))
	})

	It("keeps a window of cards around the cursor", func() {
		for i := range 10 {
			source.view.Items = append(source.view.Items, memory.Record{ID: string(rune('a' + i)), Content: "note"})
		}
		load()
		send(bubbletea.WindowSizeMsg{Width: 80, Height: 18})

		start, end := model.visibleRange()
		Expect(end - start).To(Equal(3))
		Expect(model.View()).To(ContainSubstring("1 of 12"))
	})
})
