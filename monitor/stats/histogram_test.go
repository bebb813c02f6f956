package stats_test

import (
	"time"

	. "github.com/mobile-directing-system/mds-store/monitor/stats"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Histogram", func() {
	var histogramOptions HistogramOptions

	BeforeEach(func() {
		histogramOptions = HistogramOptions{
			Name: "store.duration",
		}
	})

	Describe("#NewHistogram", func() {
		It("correctly determines the window size for rotation", func() {
			// requires a minimum of 30 (10 * 3) data points
			// window sizes are calculated as 10% of this min count
			histogramOptions.Buckets = []float64{10}
			subject := NewHistogram(histogramOptions)
			Expect(subject.CountBeforeRotation()).To(Equal(int64(3)))

			// requires a minimum of 6 (2 * 3) data points
			histogramOptions.Buckets = []float64{50}
			subject = NewHistogram(histogramOptions)
			Expect(subject.CountBeforeRotation()).To(Equal(int64(1)))

			// requires a minimum of 60 (20 * 3) data points
			histogramOptions.Buckets = []float64{95}
			subject = NewHistogram(histogramOptions)
			Expect(subject.CountBeforeRotation()).To(Equal(int64(6)))

			// requires a minimum of 3000 (1000 * 3) data points
			histogramOptions.Buckets = []float64{99.9}
			subject = NewHistogram(histogramOptions)
			Expect(subject.CountBeforeRotation()).To(Equal(int64(300)))
		})

		It("correctly determines the window size when multiple percentiles are requested", func() {
			histogramOptions.Buckets = []float64{10, 50, 95, 99.9}
			subject := NewHistogram(histogramOptions)
			Expect(subject.CountBeforeRotation()).To(Equal(int64(300)))

			histogramOptions.Buckets = []float64{95, 99, 10, 50}
			subject = NewHistogram(histogramOptions)
			Expect(subject.CountBeforeRotation()).To(Equal(int64(30)))
		})
	})

	Describe("#Observe", func() {
		It("records the expected max in milliseconds", func() {
			histogramOptions.MaxDuration = time.Second
			subject := NewHistogram(histogramOptions)

			Expect(subject.Observe(time.Millisecond)).To(Succeed())
			Expect(subject.Observe(time.Millisecond * 30)).To(Succeed())
			Expect(subject.Observe(time.Millisecond * 55)).To(Succeed())

			values := subject.Collect()
			Expect(values).To(HaveKeyWithValue("store.duration.max", int64(55)))
		})

		It("fails if the value is larger than the MaxDuration", func() {
			histogramOptions.MaxDuration = time.Second
			subject := NewHistogram(histogramOptions)

			Expect(subject.Observe(time.Second)).To(Succeed())
			Expect(subject.Observe(time.Hour)).NotTo(Succeed())
		})

		It("fails if the value is negative", func() {
			histogramOptions.MaxDuration = time.Minute
			subject := NewHistogram(histogramOptions)

			Expect(subject.Observe(0)).To(Succeed())
			Expect(subject.Observe(time.Second * -1)).NotTo(Succeed())
		})

		It("rotates values once enough data has been collected, based on the most granular bucket", func() {
			histogramOptions.MaxDuration = time.Millisecond * 5
			histogramOptions.Buckets = []float64{50} // should rotate every data point
			subject := NewHistogram(histogramOptions)

			count := 4

			for i := 0; i < count; i++ {
				Expect(subject.Observe(time.Millisecond * 1)).To(Succeed())
			}

			// Should be:
			//   1 [1] 1 1
			Expect(subject.Collect()).To(HaveKeyWithValue("store.duration.p50", int64(1)))

			for i := 0; i < count; i++ {
				Expect(subject.Observe(time.Millisecond * 2)).To(Succeed())
			}

			// Should be:
			//   1 1 1 [1] 2 2 2 2
			Expect(subject.Collect()).To(HaveKeyWithValue("store.duration.p50", int64(1)))

			for i := 0; i < count; i++ {
				Expect(subject.Observe(time.Millisecond * 3)).To(Succeed())
			}

			// Should be:
			//  1 1 1 2 2 [2] 2 3 3 3 3
			// Without rotation, would be:
			//  1 1 1 1 2 [2] 2 2 3 3 3 3
			Expect(subject.Collect()).To(HaveKeyWithValue("store.duration.p50", int64(2)))
		})
	})

	Describe("#Collect", func() {
		It("returns labeled values for all buckets, including max", func() {
			histogramOptions.Buckets = []float64{50, 75, 99.9}
			subject := NewHistogram(histogramOptions)

			values := subject.Collect()
			Expect(values).To(HaveLen(len(histogramOptions.Buckets) + 1)) // 1 per bucket + max
			Expect(values).To(HaveKeyWithValue("store.duration.max", int64(0)))
			Expect(values).To(HaveKeyWithValue("store.duration.p50", int64(0)))
			Expect(values).To(HaveKeyWithValue("store.duration.p75", int64(0)))
			Expect(values).To(HaveKeyWithValue("store.duration.p999", int64(0)))
		})

		It("contains the expected values for each bucket", func() {
			histogramOptions.MaxDuration = time.Millisecond * 5
			histogramOptions.Buckets = []float64{50, 85}
			subject := NewHistogram(histogramOptions)

			Expect(subject.Observe(time.Millisecond)).To(Succeed())
			Expect(subject.Observe(time.Millisecond * 2)).To(Succeed())
			Expect(subject.Observe(time.Millisecond * 3)).To(Succeed())

			values := subject.Collect()
			Expect(values).To(HaveKeyWithValue("store.duration.p50", int64(2)))
			Expect(values).To(HaveKeyWithValue("store.duration.p85", int64(3)))
		})
	})
})
