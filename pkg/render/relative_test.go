package render_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/cogniz/pkg/render"
)

var _ = Describe("RelativeTime", func() {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	ago := func(d time.Duration) string {
		return now.Add(-d).Format(time.RFC3339)
	}

	DescribeTable("labels",
		func(d time.Duration, expected string) {
			label, ok := render.RelativeTime(ago(d), now)
			Expect(ok).To(BeTrue())
			Expect(label).To(Equal(expected))
		},
		Entry("just now", 10*time.Second, "moments ago"),
		Entry("one minute", time.Minute, "1 min ago"),
		Entry("minutes", 5*time.Minute, "5 mins ago"),
		Entry("one hour", 61*time.Minute, "1 hr ago"),
		Entry("hours", 3*time.Hour, "3 hrs ago"),
		Entry("days", 2*24*time.Hour, "2 days ago"),
		Entry("a week", 8*24*time.Hour, "Mar 2, 2025, 12:00 PM"),
	)

	It("has no label for unparseable timestamps", func() {
		_, ok := render.RelativeTime("yesterday-ish", now)
		Expect(ok).To(BeFalse())
	})
})
