// Package resnet - ResNet Modell-Implementierung
//
// Diese Datei enthaelt:
// - Options: Konfigurationsparameter fuer das Modell
// - ResNet: Hauptmodell mit Stem, vier Stages und Klassifikationskopf
// - NewResNet18/34/50/101/152: Architektur-Factories
// - DefaultStageConfigs: Standard-Konfiguration der Stages
//
// ResNet ist ein Bildklassifikations-Netz aus Residual-Bloecken,
// ausgelegt fuer 32x32 Eingaben. Die Kanalbreiten der vier Stages
// sind 64/128/256/512, der Kopf mittelt ueber 4x4 Feature-Maps.

package resnet

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/strata-ml/strata/fs"
	"github.com/strata-ml/strata/ml"
	"github.com/strata-ml/strata/ml/nn"
	"github.com/strata-ml/strata/model"
)

// stageWidths sind die Basis-Kanalbreiten der vier Stages
var stageWidths = [4]int{64, 128, 256, 512}

// Options enthaelt alle Konfigurationsparameter fuer das Modell.
// Null-Werte werden mit den Standardwerten belegt.
type Options struct {
	Classes int       // Anzahl der Ausgabe-Klassen, Standard 10
	Eps     float32   // Epsilon der Batch-Normalisierung, Standard 1e-5
	Init    nn.InitFn // Gewichts-Initialisierung, Standard KaimingUniform(1)
}

// defaults belegt Null-Werte mit den Standardwerten
func (o *Options) defaults() {
	if o.Classes == 0 {
		o.Classes = 10
	}
	if o.Eps == 0 {
		o.Eps = 1e-5
	}
	if o.Init == nil {
		o.Init = nn.KaimingUniform(1)
	}
}

// StageConfigs konfiguriert die Bloecke der vier Stages. Eine
// nil-Stage wird mit DefaultStageConfigs belegt, ansonsten muss die
// Laenge der Block-Anzahl der Architektur entsprechen.
type StageConfigs [4][]BlockConfig

// DefaultStageConfigs erzeugt die Standard-Konfiguration: der erste
// Block der Stages 2-4 halbiert die Aufloesung mit Stride 2, alle
// anderen Bloecke haben Stride 1
func DefaultStageConfigs(v Variant, counts [4]int) StageConfigs {
	var configs StageConfigs
	for s, count := range counts {
		cfgs := make([]BlockConfig, count)
		for i := range cfgs {
			stride := 1
			if s > 0 && i == 0 {
				stride = 2
			}
			cfgs[i] = v.DefaultConfig(stride)
		}
		configs[s] = cfgs
	}

	return configs
}

// ResNet ist das vollstaendige Klassifikations-Netz
type ResNet struct {
	Stem *nn.Conv2D
	Norm *nn.BatchNorm2D

	Layer1 []Block
	Layer2 []Block
	Layer3 []Block
	Layer4 []Block

	Output *nn.Linear

	*Options
}

// build konstruiert das Netz: Stem 3->64, vier Stages, Linear-Kopf
func build(ctx ml.Context, v Variant, counts [4]int, configs StageConfigs, opts Options) (*ResNet, error) {
	opts.defaults()

	defaults := DefaultStageConfigs(v, counts)
	for i := range configs {
		if configs[i] == nil {
			configs[i] = defaults[i]
		}
	}

	stem, err := nn.NewConv2D(ctx, opts.Init, 3, stageWidths[0], 3, 1, 1)
	if err != nil {
		return nil, fmt.Errorf("resnet: stem: %w", err)
	}

	norm, err := nn.NewBatchNorm2D(ctx, stageWidths[0], opts.Eps)
	if err != nil {
		return nil, fmt.Errorf("resnet: stem: %w", err)
	}

	inPlanes := stageWidths[0]
	var stages [4][]Block
	for s := range stages {
		stages[s], inPlanes, err = buildStage(ctx, v, inPlanes, stageWidths[s], counts[s], configs[s], &opts)
		if err != nil {
			return nil, fmt.Errorf("resnet: stage %d: %w", s+1, err)
		}
	}

	output, err := nn.NewLinear(ctx, opts.Init, stageWidths[3]*v.Expansion(), opts.Classes)
	if err != nil {
		return nil, fmt.Errorf("resnet: classifier: %w", err)
	}

	m := &ResNet{
		Stem: stem, Norm: norm,
		Layer1: stages[0], Layer2: stages[1], Layer3: stages[2], Layer4: stages[3],
		Output:  output,
		Options: &opts,
	}

	slog.Info("resnet assembled", "blocks", counts, "classes", opts.Classes, "parameters", model.ParameterCount(m))

	return m, nil
}

// buildStage baut die Bloecke einer Stage. Der erste Block wechselt
// von inPlanes auf planes, danach laeuft die Kanalzahl mit dem
// Expansionsfaktor der Bauweise weiter.
func buildStage(ctx ml.Context, v Variant, inPlanes, planes, count int, cfgs []BlockConfig, opts *Options) ([]Block, int, error) {
	if len(cfgs) != count {
		return nil, 0, fmt.Errorf("got %d block configs, want %d", len(cfgs), count)
	}

	blocks := make([]Block, count)
	for i, cfg := range cfgs {
		block, err := v.New(ctx, inPlanes, planes, cfg, opts)
		if err != nil {
			return nil, 0, fmt.Errorf("block %d: %w", i, err)
		}

		blocks[i] = block
		inPlanes = planes * v.Expansion()
	}

	return blocks, inPlanes, nil
}

// NewResNet18 baut ein ResNet-18: BasicBlocks, 2-2-2-2
func NewResNet18(ctx ml.Context, configs StageConfigs, opts Options) (*ResNet, error) {
	return build(ctx, Basic{}, [4]int{2, 2, 2, 2}, configs, opts)
}

// NewResNet34 baut ein ResNet-34: BasicBlocks, 3-4-6-3
func NewResNet34(ctx ml.Context, configs StageConfigs, opts Options) (*ResNet, error) {
	return build(ctx, Basic{}, [4]int{3, 4, 6, 3}, configs, opts)
}

// NewResNet50 baut ein ResNet-50: BottleneckBlocks, 3-4-6-3
func NewResNet50(ctx ml.Context, configs StageConfigs, opts Options) (*ResNet, error) {
	return build(ctx, Bottleneck{}, [4]int{3, 4, 6, 3}, configs, opts)
}

// NewResNet101 baut ein ResNet-101: BottleneckBlocks, 3-4-23-3
func NewResNet101(ctx ml.Context, configs StageConfigs, opts Options) (*ResNet, error) {
	return build(ctx, Bottleneck{}, [4]int{3, 4, 23, 3}, configs, opts)
}

// NewResNet152 baut ein ResNet-152: BottleneckBlocks, 3-8-36-3
func NewResNet152(ctx ml.Context, configs StageConfigs, opts Options) (*ResNet, error) {
	return build(ctx, Bottleneck{}, [4]int{3, 8, 36, 3}, configs, opts)
}

// stages gibt die vier Stages in Reihenfolge zurueck
func (m *ResNet) stages() [4][]Block {
	return [4][]Block{m.Layer1, m.Layer2, m.Layer3, m.Layer4}
}

// Validate prueft ob das Netz vollstaendig aufgebaut ist
func (m *ResNet) Validate() error {
	if m.Stem == nil || m.Norm == nil {
		return errors.New("resnet: missing stem")
	}

	for s, stage := range m.stages() {
		if len(stage) == 0 {
			return fmt.Errorf("resnet: stage %d is empty", s+1)
		}
	}

	if m.Output == nil {
		return errors.New("resnet: missing classifier")
	}

	return nil
}

// Forward fuehrt einen Vorwaerts-Pass durch: Stem, vier Stages,
// 4x4 Average-Pooling, Linear-Kopf. Eingabe (N, 3, H, W), Ausgabe
// (N, Classes).
func (m *ResNet) Forward(ctx ml.Context, t ml.Tensor) (ml.Tensor, error) {
	shape := t.Shape()
	if len(shape) != 4 || shape[1] != 3 {
		return nil, fmt.Errorf("resnet: input must be (N, 3, H, W), got shape %v", shape)
	}

	out := m.Norm.Forward(ctx, m.Stem.Forward(ctx, t)).RELU(ctx)

	for _, stage := range m.stages() {
		for _, block := range stage {
			out = block.Forward(ctx, out)
		}
	}

	// Der Kopf mittelt ueber genau 4x4: 32x32 Eingaben schrumpfen
	// durch die drei Stride-2-Stages auf diese Groesse
	if h, w := out.Dim(2), out.Dim(3); h != 4 || w != 4 {
		return nil, fmt.Errorf("resnet: feature map before pooling is %dx%d, want 4x4 (input was %dx%d)", h, w, shape[2], shape[3])
	}

	out = out.AvgPool2D(ctx, 4, 4, 0)
	out = out.Reshape(ctx, out.Dim(0), out.Dim(1))
	return m.Output.Forward(ctx, out), nil
}

// optionsFromConfig liest die Modell-Optionen aus den Metadaten
func optionsFromConfig(c fs.Config) Options {
	opts := Options{
		Classes: int(c.Uint("num_classes", 10)),
		Eps:     c.Float("epsilon", 1e-5),
	}

	if seed := c.Uint("seed"); seed > 0 {
		opts.Init = nn.KaimingUniform(uint64(seed))
	}

	return opts
}

// construct adaptiert eine Factory an die Registry-Signatur
func construct(f func(ml.Context, StageConfigs, Options) (*ResNet, error)) func(ml.Context, fs.Config) (model.Model, error) {
	return func(ctx ml.Context, c fs.Config) (model.Model, error) {
		return f(ctx, StageConfigs{}, optionsFromConfig(c))
	}
}

func init() {
	model.Register("resnet18", construct(NewResNet18))
	model.Register("resnet34", construct(NewResNet34))
	model.Register("resnet50", construct(NewResNet50))
	model.Register("resnet101", construct(NewResNet101))
	model.Register("resnet152", construct(NewResNet152))
}
