package usecase

import (
	"context"

	"ecoscan/internal/modules/detector/domain"
	"ecoscan/internal/modules/detector/dto"
	detectorin "ecoscan/internal/modules/detector/port/in"
	"ecoscan/internal/modules/detector/service"
	progressdto "ecoscan/internal/modules/progress/dto"
	progressin "ecoscan/internal/modules/progress/port/in"
)

type Interactor struct {
	svc      *service.DetectorService
	progress progressin.Usecase
}

func NewInteractor(svc *service.DetectorService, progress progressin.Usecase) detectorin.Usecase {
	return &Interactor{svc: svc, progress: progress}
}

func (i *Interactor) Scan(ctx context.Context) (dto.ScanOutput, error) {
	reading, err := i.svc.Next(ctx)
	if err != nil {
		return dto.ScanOutput{}, err
	}
	return i.record(ctx, reading)
}

func (i *Interactor) ScanMaterial(ctx context.Context, name string) (dto.ScanOutput, error) {
	reading, err := i.svc.For(name)
	if err != nil {
		return dto.ScanOutput{}, err
	}
	return i.record(ctx, reading)
}

func (i *Interactor) Catalog(context.Context) ([]dto.MaterialOutput, error) {
	out := make([]dto.MaterialOutput, 0, len(domain.Catalog))
	for _, m := range domain.Catalog {
		out = append(out, toMaterialOutput(m))
	}
	return out, nil
}

func (i *Interactor) Doctor(ctx context.Context) (dto.DoctorResult, error) {
	return i.svc.Doctor(ctx), nil
}

func (i *Interactor) record(ctx context.Context, reading domain.Reading) (dto.ScanOutput, error) {
	out, err := i.progress.RecordDetection(ctx, progressdto.RecordInput{
		Material:   reading.Material,
		Confidence: reading.Confidence,
		CO2Saved:   reading.CO2Saved,
	})
	if err != nil {
		return dto.ScanOutput{}, err
	}
	material, _ := domain.Lookup(reading.Material)
	return dto.ScanOutput{Source: i.svc.Source(), Material: toMaterialOutput(material), Record: out}, nil
}

func toMaterialOutput(m domain.Material) dto.MaterialOutput {
	return dto.MaterialOutput{Name: m.Name, Slug: m.Slug(), Category: string(m.Category), CO2Saved: m.CO2Saved}
}
