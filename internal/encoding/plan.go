package encoding

// Plan is the ffmpeg invocation derived from a Request.
type Plan struct {
	VideoCodec string
	HWAccel    string // empty for the software path
	OutputPath string
}

// BuildPlan maps a request onto codec and hardware acceleration flags.
// Unrecognized devices take the software path; planning never fails.
func BuildPlan(req Request) Plan {
	plan := Plan{
		VideoCodec: "libx264",
		OutputPath: req.SourcePath + "." + req.TargetFormat,
	}
	switch req.Device {
	case DeviceNVIDIA:
		plan.VideoCodec, plan.HWAccel = "h264_nvenc", "cuda"
	case DeviceIntel:
		plan.VideoCodec, plan.HWAccel = "h264_qsv", "qsv"
	case DeviceAMD:
		plan.VideoCodec, plan.HWAccel = "h264_amf", "dxva2"
	}
	return plan
}

// Args returns the full ffmpeg argument list for the plan. Progress goes to
// stdout as key=value lines; the human-readable stats line is suppressed.
func (p Plan) Args(sourcePath string) []string {
	args := make([]string, 0, 12)
	args = append(args, "-y")
	if p.HWAccel != "" {
		args = append(args, "-hwaccel", p.HWAccel)
	}
	args = append(args,
		"-i", sourcePath,
		"-c:v", p.VideoCodec,
		p.OutputPath,
		"-progress", "pipe:1",
		"-nostats",
	)
	return args
}
