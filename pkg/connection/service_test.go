package connection_test

import (
	"context"
	"os"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/cogniz/pkg/config"
	"github.com/papercomputeco/cogniz/pkg/connection"
	"github.com/papercomputeco/cogniz/pkg/credentials"
	"github.com/papercomputeco/cogniz/pkg/logger"
)

func ptr(s string) *string { return &s }

var _ = Describe("Service", func() {
	var (
		tmpDir string
		svc    *connection.Service
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "connection-test-*")
		Expect(err).NotTo(HaveOccurred())

		GinkgoT().Setenv(credentials.EnvAPIKey, "")

		svc, err = connection.NewService(tmpDir)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	Describe("NormalizeBaseURL", func() {
		It("trims whitespace and every trailing slash", func() {
			Expect(connection.NormalizeBaseURL("  https://x.com/// ")).To(Equal("https://x.com"))
			Expect(connection.NormalizeBaseURL("   ")).To(BeEmpty())
		})
	})

	Describe("Connection", func() {
		It("is nil until both base URL and project id are stored", func() {
			conn, err := svc.Connection()
			Expect(err).NotTo(HaveOccurred())
			Expect(conn).To(BeNil())

			Expect(svc.UpdateConnection(connection.Update{BaseURL: ptr("https://x.com")})).To(Succeed())
			conn, err = svc.Connection()
			Expect(err).NotTo(HaveOccurred())
			Expect(conn).To(BeNil())
			Expect(svc.IsConfigured()).To(BeFalse())

			Expect(svc.UpdateConnection(connection.Update{ProjectID: ptr(" 42 ")})).To(Succeed())
			conn, err = svc.Connection()
			Expect(err).NotTo(HaveOccurred())
			Expect(conn).To(Equal(&connection.Connection{BaseURL: "https://x.com", ProjectID: "42"}))
			Expect(svc.IsConfigured()).To(BeTrue())
		})

		It("normalizes a base URL edited by hand", func() {
			cfger, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfger.SetConfigValue("connection.base_url", "https://x.com/wp-json/")).To(Succeed())
			Expect(cfger.SetConfigValue("connection.project_id", "1")).To(Succeed())

			conn, err := svc.Connection()
			Expect(err).NotTo(HaveOccurred())
			Expect(conn.BaseURL).To(Equal("https://x.com/wp-json"))
		})
	})

	Describe("UpdateConnection", func() {
		It("keeps the existing project name when given a blank one", func() {
			Expect(svc.UpdateConnection(connection.Update{
				BaseURL:     ptr("https://x.com/"),
				ProjectID:   ptr("1"),
				ProjectName: ptr("Research"),
			})).To(Succeed())
			Expect(svc.UpdateConnection(connection.Update{ProjectName: ptr("  ")})).To(Succeed())

			conn, err := svc.Connection()
			Expect(err).NotTo(HaveOccurred())
			Expect(conn.ProjectName).To(Equal("Research"))
			Expect(conn.BaseURL).To(Equal("https://x.com"))
		})
	})

	Describe("Secrets", func() {
		BeforeEach(func() {
			Expect(svc.UpdateConnection(connection.Update{BaseURL: ptr("https://x.com"), ProjectID: ptr("1")})).To(Succeed())
		})

		It("is nil without a key", func() {
			secrets, err := svc.Secrets()
			Expect(err).NotTo(HaveOccurred())
			Expect(secrets).To(BeNil())
			Expect(svc.HasAPIKey()).To(BeFalse())
		})

		It("combines connection and key", func() {
			Expect(svc.SetAPIKey("  tok  ")).To(Succeed())

			secrets, err := svc.Secrets()
			Expect(err).NotTo(HaveOccurred())
			Expect(secrets.APIKey).To(Equal("tok"))
			Expect(secrets.ProjectID).To(Equal("1"))
			Expect(svc.HasAPIKey()).To(BeTrue())
		})

		It("uses COGNIZ_API_KEY when set", func() {
			GinkgoT().Setenv(credentials.EnvAPIKey, "env-tok")

			secrets, err := svc.Secrets()
			Expect(err).NotTo(HaveOccurred())
			Expect(secrets.APIKey).To(Equal("env-tok"))
		})

		It("does not reuse a key stored for another server", func() {
			Expect(svc.SetAPIKey("tok")).To(Succeed())
			Expect(svc.UpdateConnection(connection.Update{BaseURL: ptr("https://other.example")})).To(Succeed())

			secrets, err := svc.Secrets()
			Expect(err).NotTo(HaveOccurred())
			Expect(secrets).To(BeNil())
		})
	})

	Describe("SetAPIKey", func() {
		It("needs a base URL first", func() {
			Expect(svc.SetAPIKey("tok")).To(MatchError(connection.ErrNoBaseURL))
		})
	})

	Describe("SelectedProject", func() {
		It("round-trips and trims", func() {
			Expect(svc.SetSelectedProject(&connection.SelectedProject{ProjectID: " 7 ", ProjectName: " Scratch "})).To(Succeed())

			sel, err := svc.SelectedProject()
			Expect(err).NotTo(HaveOccurred())
			Expect(sel).To(Equal(&connection.SelectedProject{ProjectID: "7", ProjectName: "Scratch"}))
		})

		It("clears on nil or blank id", func() {
			Expect(svc.SetSelectedProject(&connection.SelectedProject{ProjectID: "7"})).To(Succeed())
			Expect(svc.SetSelectedProject(&connection.SelectedProject{ProjectID: "  "})).To(Succeed())

			sel, err := svc.SelectedProject()
			Expect(err).NotTo(HaveOccurred())
			Expect(sel).To(BeNil())

			Expect(svc.SetSelectedProject(&connection.SelectedProject{ProjectID: "7"})).To(Succeed())
			Expect(svc.SetSelectedProject(nil)).To(Succeed())
			sel, err = svc.SelectedProject()
			Expect(err).NotTo(HaveOccurred())
			Expect(sel).To(BeNil())
		})
	})

	Describe("ClearConnection", func() {
		It("removes connection, selection and key", func() {
			Expect(svc.UpdateConnection(connection.Update{BaseURL: ptr("https://x.com"), ProjectID: ptr("1")})).To(Succeed())
			Expect(svc.SetAPIKey("tok")).To(Succeed())
			Expect(svc.SetSelectedProject(&connection.SelectedProject{ProjectID: "7"})).To(Succeed())

			Expect(svc.ClearConnection()).To(Succeed())

			conn, err := svc.Connection()
			Expect(err).NotTo(HaveOccurred())
			Expect(conn).To(BeNil())

			sel, err := svc.SelectedProject()
			Expect(err).NotTo(HaveOccurred())
			Expect(sel).To(BeNil())

			mgr, err := credentials.NewManager(tmpDir)
			Expect(err).NotTo(HaveOccurred())
			key, err := mgr.GetKey("https://x.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(key).To(BeEmpty())
		})
	})

	Describe("WatchProject", func() {
		It("fires when the selected project changes", func() {
			Expect(svc.UpdateConnection(connection.Update{BaseURL: ptr("https://x.com"), ProjectID: ptr("1")})).To(Succeed())

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			var fired atomic.Int32
			done := make(chan error, 1)
			go func() {
				done <- svc.WatchProject(ctx, logger.Nop(), func() { fired.Add(1) })
			}()

			// give the watcher time to register
			time.Sleep(100 * time.Millisecond)

			Expect(svc.SetSelectedProject(&connection.SelectedProject{ProjectID: "9"})).To(Succeed())
			Eventually(fired.Load, 2*time.Second, 20*time.Millisecond).Should(BeNumerically(">=", 1))

			cancel()
			Eventually(done, time.Second).Should(Receive(BeNil()))
		})

		It("ignores rewrites that keep the same project", func() {
			Expect(svc.UpdateConnection(connection.Update{BaseURL: ptr("https://x.com"), ProjectID: ptr("1")})).To(Succeed())

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			var fired atomic.Int32
			go func() {
				_ = svc.WatchProject(ctx, logger.Nop(), func() { fired.Add(1) })
			}()
			time.Sleep(100 * time.Millisecond)

			cfger, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfger.SetConfigValue("cache.ttl_seconds", "20")).To(Succeed())

			Consistently(fired.Load, 300*time.Millisecond, 20*time.Millisecond).Should(BeZero())
		})
	})
})
