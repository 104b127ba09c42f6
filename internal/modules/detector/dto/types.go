package dto

import progressdto "ecoscan/internal/modules/progress/dto"

type MaterialOutput struct {
	Name     string
	Slug     string
	Category string
	CO2Saved float64
}

type ScanOutput struct {
	Source   string
	Material MaterialOutput
	Record   progressdto.RecordOutput
}

type DoctorResult struct {
	Name            string
	Version         string
	Configured      bool
	Enabled         bool
	BinaryReachable bool
	ChecksumValid   bool
	LifecycleOK     bool
	Materials       []string
	Error           string
}
