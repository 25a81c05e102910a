package encoding

import (
	"reflect"
	"testing"
)

func TestBuildPlanDeviceTable(t *testing.T) {
	cases := []struct {
		device     Device
		wantCodec  string
		wantAccel  string
	}{
		{DeviceNVIDIA, "h264_nvenc", "cuda"},
		{DeviceIntel, "h264_qsv", "qsv"},
		{DeviceAMD, "h264_amf", "dxva2"},
		{DeviceCPU, "libx264", ""},
		{Device("Voodoo3"), "libx264", ""},
		{Device(""), "libx264", ""},
	}
	for _, tc := range cases {
		t.Run(string(tc.device), func(t *testing.T) {
			plan := BuildPlan(Request{SourcePath: "/media/clip.mkv", TargetFormat: "mp4", Device: tc.device})
			if plan.VideoCodec != tc.wantCodec {
				t.Fatalf("codec for %q: got %q, want %q", tc.device, plan.VideoCodec, tc.wantCodec)
			}
			if plan.HWAccel != tc.wantAccel {
				t.Fatalf("hwaccel for %q: got %q, want %q", tc.device, plan.HWAccel, tc.wantAccel)
			}
		})
	}
}

func TestBuildPlanOutputPath(t *testing.T) {
	plan := BuildPlan(Request{SourcePath: "/media/clip.mkv", TargetFormat: "mp4", Device: DeviceCPU})
	if plan.OutputPath != "/media/clip.mkv.mp4" {
		t.Fatalf("unexpected output path: %q", plan.OutputPath)
	}
}

func TestPlanArgsSoftwarePath(t *testing.T) {
	plan := BuildPlan(Request{SourcePath: "in.mkv", TargetFormat: "mp4", Device: DeviceCPU})
	got := plan.Args("in.mkv")
	want := []string{"-y", "-i", "in.mkv", "-c:v", "libx264", "in.mkv.mp4", "-progress", "pipe:1", "-nostats"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("args mismatch:\n got %v\nwant %v", got, want)
	}
}

func TestPlanArgsHardwarePath(t *testing.T) {
	plan := BuildPlan(Request{SourcePath: "in.mkv", TargetFormat: "mkv", Device: DeviceNVIDIA})
	got := plan.Args("in.mkv")
	want := []string{"-y", "-hwaccel", "cuda", "-i", "in.mkv", "-c:v", "h264_nvenc", "in.mkv.mkv", "-progress", "pipe:1", "-nostats"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("args mismatch:\n got %v\nwant %v", got, want)
	}
}

func TestParseDevice(t *testing.T) {
	if device, ok := ParseDevice("nvidia"); !ok || device != DeviceNVIDIA {
		t.Fatalf("expected case-insensitive match, got %q ok=%v", device, ok)
	}
	if _, ok := ParseDevice("Matrox"); ok {
		t.Fatal("expected unknown device to be rejected")
	}
}

func TestValidFormat(t *testing.T) {
	for _, format := range Formats() {
		if !ValidFormat(format) {
			t.Fatalf("expected %q to be valid", format)
		}
	}
	if ValidFormat("webm") {
		t.Fatal("webm is not in the supported container list")
	}
	if !ValidFormat(" MP4 ") {
		t.Fatal("expected trimming and case folding")
	}
}
