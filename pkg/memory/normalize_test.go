package memory_test

import (
	"encoding/json"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/cogniz/pkg/memory"
)

// decode mirrors how the client reads response bodies.
func decode(s string) map[string]any {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var out map[string]any
	Expect(dec.Decode(&out)).To(Succeed())
	return out
}

var _ = Describe("Normalize", func() {
	It("maps the canonical field names", func() {
		rec := memory.Normalize(decode(`{
			"memory_id": "m-1",
			"content": "Remember the milk",
			"category": "errands",
			"relevance": 0.87,
			"metadata": {"source": "cli"},
			"stored_at": "2025-01-02T03:04:05Z"
		}`))

		Expect(rec.ID).To(Equal("m-1"))
		Expect(rec.Content).To(Equal("Remember the milk"))
		Expect(rec.Category).To(Equal("errands"))
		Expect(rec.Relevance).NotTo(BeNil())
		Expect(*rec.Relevance).To(BeNumerically("~", 0.87, 1e-9))
		Expect(rec.Metadata).To(HaveKeyWithValue("source", "cli"))
		Expect(rec.StoredAt).To(Equal("2025-01-02T03:04:05Z"))
	})

	It("falls back to memory, categories and created_at", func() {
		rec := memory.Normalize(decode(`{
			"memory": "fallback text",
			"categories": [3, "notes", "other"],
			"created_at": "2025-01-01 10:00:00"
		}`))

		Expect(rec.Content).To(Equal("fallback text"))
		Expect(rec.Category).To(Equal("notes"))
		Expect(rec.StoredAt).To(Equal("2025-01-01 10:00:00"))
	})

	It("uses timestamp when stored_at and created_at are absent", func() {
		rec := memory.Normalize(decode(`{"content": "x", "timestamp": "2025-01-01"}`))
		Expect(rec.StoredAt).To(Equal("2025-01-01"))
	})

	It("coerces a numeric memory_id to a string", func() {
		rec := memory.Normalize(decode(`{"memory_id": 1234, "content": "x"}`))
		Expect(rec.ID).To(Equal("1234"))
	})

	It("falls back to content for the id", func() {
		rec := memory.Normalize(decode(`{"content": "same text"}`))
		Expect(rec.ID).To(Equal("same text"))

		rec = memory.Normalize(decode(`{"memory_id": null, "content": "same text"}`))
		Expect(rec.ID).To(Equal("same text"))
	})

	It("drops metadata that is not an object", func() {
		Expect(memory.Normalize(decode(`{"content": "x", "metadata": ["a"]}`)).Metadata).To(BeNil())
		Expect(memory.Normalize(decode(`{"content": "x", "metadata": null}`)).Metadata).To(BeNil())
		Expect(memory.Normalize(decode(`{"content": "x", "metadata": "str"}`)).Metadata).To(BeNil())
	})

	It("ignores a non-numeric relevance", func() {
		Expect(memory.Normalize(decode(`{"content": "x", "relevance": "high"}`)).Relevance).To(BeNil())
	})

	It("yields empty content when neither field is present", func() {
		Expect(memory.Normalize(decode(`{"memory_id": "a"}`)).Content).To(BeEmpty())
	})
})

var _ = Describe("NormalizeAll", func() {
	It("drops records with blank content", func() {
		recs := memory.NormalizeAll([]map[string]any{
			decode(`{"content": "kept"}`),
			decode(`{"content": "   "}`),
			decode(`{"memory_id": "no-content"}`),
		})
		Expect(recs).To(HaveLen(1))
		Expect(recs[0].Content).To(Equal("kept"))
	})
})

var _ = Describe("ParseProjects", func() {
	parse := func(s string) []memory.Project {
		dec := json.NewDecoder(strings.NewReader(s))
		dec.UseNumber()
		var v any
		Expect(dec.Decode(&v)).To(Succeed())
		return memory.ParseProjects(v)
	}

	It("accepts a bare array", func() {
		projects := parse(`[{"project_id": "a", "name": "Alpha"}, {"id": 7, "project_name": "Seven"}]`)
		Expect(projects).To(Equal([]memory.Project{
			{ID: "a", Name: "Alpha"},
			{ID: "7", Name: "Seven"},
		}))
	})

	It("accepts a projects envelope", func() {
		projects := parse(`{"projects": [{"project_id": "a", "project_description": "desc"}]}`)
		Expect(projects).To(Equal([]memory.Project{{ID: "a", Description: "desc"}}))
	})

	It("prefers project_id over id", func() {
		projects := parse(`[{"project_id": "primary", "id": "secondary"}]`)
		Expect(projects[0].ID).To(Equal("primary"))
	})

	It("drops entries without an id", func() {
		projects := parse(`[{"name": "orphan"}, {"project_id": ""}, {"id": null}, "junk", {"id": "ok"}]`)
		Expect(projects).To(Equal([]memory.Project{{ID: "ok"}}))
	})

	It("returns nothing for an unexpected shape", func() {
		Expect(parse(`{"data": []}`)).To(BeEmpty())
		Expect(parse(`"nope"`)).To(BeEmpty())
	})
})

var _ = Describe("Project.DisplayName", func() {
	It("falls back to the id", func() {
		Expect(memory.Project{ID: "7"}.DisplayName()).To(Equal("7"))
		Expect(memory.Project{ID: "7", Name: "Seven"}.DisplayName()).To(Equal("Seven"))
	})
})
