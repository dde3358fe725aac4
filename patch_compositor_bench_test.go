// patch_compositor_bench_test.go - Benchmarks for region reconstruction performance
//
// Run with: go test -bench="Benchmark.*(Compositor|Sampler|Blur)" -benchmem -run="^$" ./...

package main

import "testing"

// =============================================================================
// Compositor Benchmarks
// =============================================================================

func BenchmarkCompositor_ApplySingleRegion720p(b *testing.B) {
	s := testSurface(1280, 720)
	region := DefaultProfile().Regions[0]
	src := SampleSource(region, 1280, 720)
	c := NewCompositor(defaultGrainCnt, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Apply(s, region, src)
	}
}

func BenchmarkCompositor_ApplyDefaultProfile720p(b *testing.B) {
	s := testSurface(1280, 720)
	profile := DefaultProfile()
	c := NewCompositor(defaultGrainCnt, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, region := range profile.Regions {
			c.Apply(s, region, SampleSource(region, 1280, 720))
		}
	}
}

func BenchmarkCompositor_ApplyStockProfile1080p(b *testing.B) {
	s := testSurface(1920, 1080)
	profile, _ := ProfileByName("stock")
	c := NewCompositor(defaultGrainCnt, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, region := range profile.Regions {
			c.Apply(s, region, SampleSource(region, 1920, 1080))
		}
	}
}

// =============================================================================
// Sampler Benchmarks
// =============================================================================

func BenchmarkSampler_SampleSource(b *testing.B) {
	region := DefaultProfile().Regions[0]

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = SampleSource(region, 1920, 1080)
	}
}

// =============================================================================
// Filter Benchmarks
// =============================================================================

func BenchmarkBlur_Patch280x76(b *testing.B) {
	// Default profile region 0 at 720p is 281x72; round numbers are close
	// enough for a representative patch.
	const w, h = 280, 76
	pix := make([]byte, w*h*4)
	for i := range pix {
		pix[i] = byte(i % 256)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		blurPatch(pix, w, h, baseFillSigma)
	}
}

func BenchmarkBlur_PatchHeavySigma(b *testing.B) {
	const w, h = 280, 76
	pix := make([]byte, w*h*4)
	for i := range pix {
		pix[i] = byte(i % 256)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		blurPatch(pix, w, h, textureSigma)
	}
}
