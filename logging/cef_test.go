package logging_test

import (
	"context"
	"net"
	"time"

	"github.com/mobile-directing-system/mds-store/contextx"
	. "github.com/mobile-directing-system/mds-store/logging"
	"github.com/mobile-directing-system/mds-store/logx"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
)

var _ = Describe("CEFLogger", func() {
	var securityLogger *CEFLogger
	var logOutput *gbytes.Buffer
	var rt = time.Date(1999, 12, 31, 23, 59, 59, 59, time.UTC)

	remoteCtx := func() context.Context {
		return contextx.WithRemoteAddr(context.Background(), &net.TCPAddr{
			IP:   net.IPv4(1, 1, 1, 1),
			Port: 12345,
		})
	}

	BeforeEach(func() {
		logOutput = gbytes.NewBuffer()
		securityLogger = NewCEFLogger(logOutput, "mobile_directing", "unittest", "0.0.1", "hook", 443)
	})

	Describe("#Log", func() {
		Context("when all fields are available", func() {
			It("logs source and destination hostnames and ports", func() {
				ctx := contextx.WithReceiptTime(remoteCtx(), rt)
				securityLogger.Log(ctx, "test-signature", "test-name")

				Eventually(logOutput).Should(gbytes.Say("test-signature"))
				Eventually(logOutput).Should(gbytes.Say("test-name"))
				Eventually(logOutput).Should(gbytes.Say("dst=hook"))
				Eventually(logOutput).Should(gbytes.Say("src=1.1.1.1"))
				Eventually(logOutput).Should(gbytes.Say("dpt=443"))
				Eventually(logOutput).Should(gbytes.Say("spt=12345"))
				Eventually(logOutput).Should(gbytes.Say("rt=\"Dec 31 1999 23:59:59\""))
			})
		})

		Context("when the receipt time is not available", func() {
			It("does not log rt", func() {
				securityLogger.Log(remoteCtx(), "test-signature", "test-name")

				output := string(logOutput.Contents())
				Expect(output).NotTo(ContainSubstring("rt="))
			})
		})

		Context("when there are custom extensions", func() {
			var (
				customExtension1 logx.SecurityData
				customExtension2 logx.SecurityData
			)

			BeforeEach(func() {
				customExtension1 = logx.SecurityData{Key: "userID", Value: "some-user-id"}
				customExtension2 = logx.SecurityData{Key: "operationID", Value: "some-operation-id"}
			})

			It("logs each extension", func() {
				securityLogger.Log(remoteCtx(), "test-signature", "test-name", customExtension1, customExtension2)

				Eventually(logOutput).Should(gbytes.Say("cs1Label=userID"))
				Eventually(logOutput).Should(gbytes.Say("cs1=some-user-id"))
				Eventually(logOutput).Should(gbytes.Say("cs2Label=operationID"))
				Eventually(logOutput).Should(gbytes.Say("cs2=some-operation-id"))
			})

			Context("when an extension has no key", func() {
				It("logs the error and keeps the valid extensions", func() {
					invalidExtension := logx.SecurityData{Value: "no-key"}
					validExtension := logx.SecurityData{Key: "key", Value: "value"}

					securityLogger.Log(remoteCtx(), "test-signature", "test-name", invalidExtension, validExtension)

					Eventually(logOutput).Should(gbytes.Say("cs1Label=key"))
					Eventually(logOutput).Should(gbytes.Say("cs1=value"))
					Eventually(logOutput).Should(gbytes.Say("msg=ERROR:invalid-custom-extension;"))
					Consistently(logOutput).ShouldNot(gbytes.Say("cs1=no-key"))
				})
			})

			Context("when an extension has no value", func() {
				It("logs the error and keeps the valid extensions", func() {
					invalidExtension := logx.SecurityData{Key: "noValue"}
					validExtension := logx.SecurityData{Key: "key", Value: "value"}

					securityLogger.Log(remoteCtx(), "test-signature", "test-name", invalidExtension, validExtension)

					Eventually(logOutput).Should(gbytes.Say("cs1Label=key"))
					Eventually(logOutput).Should(gbytes.Say("cs1=value"))
					Eventually(logOutput).Should(gbytes.Say("msg=ERROR:invalid-custom-extension;"))
					Consistently(logOutput).ShouldNot(gbytes.Say("cs1Label=noValue"))
				})
			})

			Context("when there are more than 6 custom extensions", func() {
				It("reports the overflow", func() {
					args := []logx.SecurityData{
						customExtension1,
						customExtension2,
						{Key: "groupID", Value: "some-group-id"},
						{Key: "username", Value: "some-username"},
						{Key: "permission", Value: "user.view"},
						{Key: "sessionUserID", Value: "session-user-id"},
						{Key: "extra", Value: "extra-value"},
					}

					securityLogger.Log(remoteCtx(), "test-signature", "test-name", args...)

					Eventually(logOutput).Should(gbytes.Say("msg=ERROR:too-many-custom-extensions;"))
					Consistently(logOutput).ShouldNot(gbytes.Say("cs7"))
				})
			})
		})
	})
})
