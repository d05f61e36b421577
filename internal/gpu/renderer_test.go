//go:build !nogpu

package gpu

import (
	"errors"
	"testing"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/logicsim/atlas"
	"github.com/gogpu/logicsim/draw"
	"github.com/gogpu/logicsim/pipeline"
	"github.com/gogpu/logicsim/platform"
)

func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

func createTarget(t *testing.T, device hal.Device, w, h uint32) hal.TextureView {
	t.Helper()
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "test_target",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		t.Fatalf("CreateTexture failed: %v", err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "test_target_view",
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		t.Fatalf("CreateTextureView failed: %v", err)
	}
	t.Cleanup(func() {
		device.DestroyTextureView(view)
		device.DestroyTexture(tex)
	})
	return view
}

func testFrame(a *atlas.Atlas, quads int) *platform.Frame {
	l := draw.NewList(a)
	for i := range quads {
		x := float32(i % 50 * 4)
		y := float32(i / 50 * 4)
		l.FillRect(draw.RectFromMinSize(draw.Pt(x, y), 3, 3), pipeline.White)
	}
	return &platform.Frame{
		List:   l,
		Locals: pipeline.NewLocals(200, 200, a.Size()),
		Clear:  pipeline.Black,
	}
}

func TestNewRendererErrors(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	tests := []struct {
		name   string
		device hal.Device
		queue  hal.Queue
		atlas  *atlas.Atlas
		want   error
	}{
		{"nil device", nil, queue, atlas.MustNew(), ErrNilDevice},
		{"nil queue", device, nil, atlas.MustNew(), ErrNilDevice},
		{"nil atlas", device, queue, nil, ErrNilAtlas},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRenderer(tt.device, tt.queue, tt.atlas, DefaultConfig())
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if r != nil {
				t.Error("expected nil renderer")
			}
		})
	}
}

func TestRendererLifecycle(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	a := atlas.MustNew()
	r, err := NewRenderer(device, queue, a, Config{})
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	if r.pipeline == nil || r.bindGroup == nil || r.atlasView == nil || r.sampler == nil {
		t.Fatal("expected pipeline objects to be created")
	}
	if r.cfg != DefaultConfig() {
		t.Errorf("zero config not normalized: %+v", r.cfg)
	}
	if r.AtlasSize() != a.Size() {
		t.Errorf("AtlasSize = %d, want %d", r.AtlasSize(), a.Size())
	}

	view := createTarget(t, device, 200, 200)
	if err := r.Render(view, testFrame(a, 10)); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if r.Frames() != 1 {
		t.Errorf("Frames = %d, want 1", r.Frames())
	}

	r.Destroy()
	r.Destroy()
	if err := r.Render(view, testFrame(a, 1)); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Render after Destroy: err = %v, want ErrDestroyed", err)
	}
}

func TestRenderArguments(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	a := atlas.MustNew()
	r, err := NewRenderer(device, queue, a, DefaultConfig())
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	defer r.Destroy()

	if err := r.Render(nil, testFrame(a, 1)); !errors.Is(err, ErrNilView) {
		t.Errorf("nil view: err = %v", err)
	}
	view := createTarget(t, device, 16, 16)
	if err := r.Render(view, nil); !errors.Is(err, ErrNilFrame) {
		t.Errorf("nil frame: err = %v", err)
	}
	// A frame without a list only clears.
	if err := r.Render(view, &platform.Frame{Clear: pipeline.White}); err != nil {
		t.Errorf("clear-only frame: %v", err)
	}
}

func TestRenderGrowsBuffers(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	a := atlas.MustNew()
	r, err := NewRenderer(device, queue, a, Config{InitialVertices: 4, InitialIndices: 6})
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	defer r.Destroy()

	frame := testFrame(a, 500)
	view := createTarget(t, device, 200, 200)
	if err := r.Render(view, frame); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	needV := uint64(len(frame.List.Vertices) * pipeline.VertexStride)
	needI := uint64(len(frame.List.Indices) * pipeline.IndexSize)
	if r.vertCap < needV {
		t.Errorf("vertex capacity %d < %d", r.vertCap, needV)
	}
	if r.idxCap < needI {
		t.Errorf("index capacity %d < %d", r.idxCap, needI)
	}
}

var errUpload = errors.New("upload rejected")

// faultyQueue wraps a queue and fails selected operations.
type faultyQueue struct {
	hal.Queue
	failTexture bool
	failBuffer  bool
	stalled     bool
}

func (q *faultyQueue) WriteTexture(dst *hal.ImageCopyTexture, data []byte, layout *hal.ImageDataLayout, size *hal.Extent3D) error {
	if q.failTexture {
		return errUpload
	}
	return q.Queue.WriteTexture(dst, data, layout, size)
}

func (q *faultyQueue) WriteBuffer(buffer hal.Buffer, offset uint64, data []byte) error {
	if q.failBuffer {
		return errUpload
	}
	return q.Queue.WriteBuffer(buffer, offset, data)
}

func (q *faultyQueue) PollCompleted() uint64 {
	if q.stalled {
		return 0
	}
	return q.Queue.PollCompleted()
}

func TestUploadErrors(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()
	a := atlas.MustNew()

	_, err := NewRenderer(device, &faultyQueue{Queue: queue, failTexture: true}, a, DefaultConfig())
	if !errors.Is(err, errUpload) {
		t.Fatalf("atlas upload: err = %v, want errUpload", err)
	}

	fq := &faultyQueue{Queue: queue}
	r, err := NewRenderer(device, fq, a, DefaultConfig())
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	defer r.Destroy()
	view := createTarget(t, device, 200, 200)

	fq.failBuffer = true
	tests := []struct {
		name  string
		frame *platform.Frame
	}{
		{"vertices", testFrame(a, 10)},
		{"locals", &platform.Frame{Clear: pipeline.White}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := r.Render(view, tt.frame); !errors.Is(err, errUpload) {
				t.Errorf("err = %v, want errUpload", err)
			}
		})
	}
	if r.Frames() != 0 {
		t.Errorf("Frames = %d after failed uploads, want 0", r.Frames())
	}
}

func TestRenderWaitTimeout(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	a := atlas.MustNew()
	fq := &faultyQueue{Queue: queue}
	r, err := NewRenderer(device, fq, a, Config{WaitTimeout: time.Millisecond})
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	defer r.Destroy()
	view := createTarget(t, device, 16, 16)

	fq.stalled = true
	if err := r.Render(view, testFrame(a, 1)); !errors.Is(err, ErrWaitTimeout) {
		t.Fatalf("err = %v, want ErrWaitTimeout", err)
	}
	fq.stalled = false
	if err := r.Render(view, testFrame(a, 1)); err != nil {
		t.Fatalf("Render after recovery: %v", err)
	}
	if r.Frames() != 1 {
		t.Errorf("Frames = %d, want 1", r.Frames())
	}
}

func TestGrowCapacity(t *testing.T) {
	tests := []struct {
		current, need, want uint64
	}{
		{0, 1, 256},
		{0, 256, 256},
		{0, 257, 512},
		{1024, 100, 1024},
		{1024, 5000, 8192},
	}
	for _, tt := range tests {
		if got := growCapacity(tt.current, tt.need); got != tt.want {
			t.Errorf("growCapacity(%d, %d) = %d, want %d", tt.current, tt.need, got, tt.want)
		}
	}
}
