package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/papercomputeco/cogniz/pkg/telemetry"
	"github.com/papercomputeco/cogniz/pkg/telemetry/kafka"
)

type fakeWriter struct {
	messages []kafkago.Message
	deadline bool
	err      error
	closed   bool
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	_, f.deadline = ctx.Deadline()
	f.messages = append(f.messages, msgs...)
	return f.err
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

var _ = Describe("Publisher", func() {
	It("requires brokers", func() {
		_, err := kafka.NewPublisher(kafka.Config{Topic: "t"})
		Expect(err).To(MatchError(kafka.ErrNoBrokers))
	})

	It("requires a topic", func() {
		_, err := kafka.NewPublisher(kafka.Config{Brokers: []string{"localhost:9092"}})
		Expect(err).To(HaveOccurred())
	})

	It("builds a writer without dialing", func() {
		p, err := kafka.NewPublisher(kafka.Config{Brokers: []string{"localhost:9092"}, Topic: "cogniz.events"})
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Close()).To(Succeed())
	})

	It("writes events as JSON keyed by name", func() {
		w := &fakeWriter{}
		p := kafka.NewPublisherWithWriter(w, time.Second)

		event := telemetry.NewEvent(telemetry.EventExecuteSkill, map[string]any{"skillId": "memory-optimizer"}, time.Now())
		Expect(p.Publish(context.Background(), event)).To(Succeed())

		Expect(w.messages).To(HaveLen(1))
		Expect(string(w.messages[0].Key)).To(Equal("execute_skill"))
		Expect(w.deadline).To(BeTrue())

		var got telemetry.Event
		Expect(json.Unmarshal(w.messages[0].Value, &got)).To(Succeed())
		Expect(got.EventID).To(Equal(event.EventID))
	})

	It("wraps write failures", func() {
		boom := errors.New("leader not available")
		p := kafka.NewPublisherWithWriter(&fakeWriter{err: boom}, time.Second)
		err := p.Publish(context.Background(), telemetry.NewEvent("x", nil, time.Now()))
		Expect(errors.Is(err, boom)).To(BeTrue())
	})

	It("closes the writer", func() {
		w := &fakeWriter{}
		Expect(kafka.NewPublisherWithWriter(w, time.Second).Close()).To(Succeed())
		Expect(w.closed).To(BeTrue())
	})
})
