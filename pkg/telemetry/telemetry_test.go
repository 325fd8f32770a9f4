package telemetry_test

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/cogniz/pkg/telemetry"
)

type recordingPublisher struct {
	events []*telemetry.Event
	err    error
	closed bool
}

func (r *recordingPublisher) Publish(_ context.Context, e *telemetry.Event) error {
	r.events = append(r.events, e)
	return r.err
}

func (r *recordingPublisher) Close() error {
	r.closed = true
	return nil
}

var _ = Describe("Event", func() {
	It("stamps id, source and schema version", func() {
		now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.FixedZone("x", 3600))
		e := telemetry.NewEvent(telemetry.EventInsertMemory, map[string]any{"queryLength": 4}, now)

		Expect(e.EventID).NotTo(BeEmpty())
		Expect(e.Source).To(Equal("cogniz-cli"))
		Expect(e.SchemaVersion).To(Equal(telemetry.SchemaVersionV1))
		Expect(e.Timestamp.Location()).To(Equal(time.UTC))

		payload, err := json.Marshal(e)
		Expect(err).NotTo(HaveOccurred())

		var got map[string]any
		Expect(json.Unmarshal(payload, &got)).To(Succeed())
		Expect(got).To(HaveKeyWithValue("name", "insert_memory"))
		Expect(got).To(HaveKey("event_id"))
		Expect(got).To(HaveKey("properties"))
	})

	It("gives every event its own id", func() {
		a := telemetry.NewEvent("a", nil, time.Now())
		b := telemetry.NewEvent("a", nil, time.Now())
		Expect(a.EventID).NotTo(Equal(b.EventID))
	})
})

var _ = Describe("Tracker", func() {
	It("publishes named events", func() {
		pub := &recordingPublisher{}
		tracker := telemetry.NewTracker(pub, nil)

		tracker.Track(context.Background(), telemetry.EventConfigureConnection, map[string]any{"hasProjectName": true})

		Expect(pub.events).To(HaveLen(1))
		Expect(pub.events[0].Name).To(Equal("configure_connection"))
		Expect(pub.events[0].Properties).To(HaveKeyWithValue("hasProjectName", true))
	})

	It("swallows publish failures", func() {
		pub := &recordingPublisher{err: errors.New("broker down")}
		tracker := telemetry.NewTracker(pub, nil)

		Expect(func() {
			tracker.Track(context.Background(), telemetry.EventStoreMemory, nil)
		}).NotTo(Panic())
		Expect(pub.events).To(HaveLen(1))
	})

	It("tolerates a nil tracker", func() {
		var tracker *telemetry.Tracker
		tracker.Track(context.Background(), "x", nil)
		Expect(tracker.Close()).To(Succeed())
	})

	It("closes the publisher", func() {
		pub := &recordingPublisher{}
		Expect(telemetry.NewTracker(pub, nil).Close()).To(Succeed())
		Expect(pub.closed).To(BeTrue())
	})
})
