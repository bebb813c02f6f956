package ioutilx

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("FileOrString", func() {
	It("returns the literal value when no such file exists", func() {
		b, err := FileOrString("-----BEGIN CERTIFICATE-----\\nabc").Bytes(OS, IOReader)

		Expect(err).NotTo(HaveOccurred())
		Expect(string(b)).To(Equal("-----BEGIN CERTIFICATE-----\nabc"))
	})

	It("reads the file contents when the value names a file", func() {
		dirName, err := os.MkdirTemp("", "mds-test")
		Expect(err).NotTo(HaveOccurred())
		defer os.RemoveAll(dirName)

		path := filepath.Join(dirName, "ca.pem")
		Expect(os.WriteFile(path, []byte("pem-bytes"), 0600)).To(Succeed())

		b, err := FileOrString(path).Bytes(OS, IOReader)

		Expect(err).NotTo(HaveOccurred())
		Expect(string(b)).To(Equal("pem-bytes"))
	})

	It("rejects directories", func() {
		dirName, err := os.MkdirTemp("", "mds-test")
		Expect(err).NotTo(HaveOccurred())
		defer os.RemoveAll(dirName)

		_, err = FileOrString(dirName).Bytes(OS, IOReader)

		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("#OpenLogFile", func() {
	var dirName, logFilePath string

	BeforeEach(func() {
		var err error
		dirName, err = os.MkdirTemp("", "mds-test")
		Expect(err).NotTo(HaveOccurred())
		logFilePath = filepath.Join(dirName, "audit.log")
	})

	AfterEach(func() {
		Expect(os.RemoveAll(dirName)).To(Succeed())
	})

	It("creates a non-existent audit file with owner-only permissions", func() {
		file, err := OpenLogFile(logFilePath)
		Expect(err).NotTo(HaveOccurred())
		defer file.Close()

		fileInfo, err := os.Stat(logFilePath)
		Expect(err).NotTo(HaveOccurred())
		Expect(fileInfo.Mode()).To(Equal(os.FileMode(0600)))
	})

	It("appends to an existing audit file", func() {
		Expect(os.WriteFile(logFilePath, []byte("logline1\n"), 0600)).To(Succeed())

		logFile, err := OpenLogFile(logFilePath)
		Expect(err).NotTo(HaveOccurred())
		_, err = logFile.Write([]byte("logline2\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(logFile.Close()).To(Succeed())

		contents, err := os.ReadFile(logFilePath)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(contents)).To(Equal("logline1\nlogline2\n"))
	})

	It("returns an error when the directory does not exist", func() {
		_, err := OpenLogFile(filepath.Join(dirName, "missing", "audit.log"))

		Expect(err).To(HaveOccurred())
	})
})
