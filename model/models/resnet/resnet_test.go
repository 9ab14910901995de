// resnet_test.go - Unit Tests fuer Bloecke, Architekturen und Registry
package resnet

import (
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/strata-ml/strata/fs"
	"github.com/strata-ml/strata/ml"
	"github.com/strata-ml/strata/ml/nn"
	"github.com/strata-ml/strata/model"
)

func newTestContext(t *testing.T) ml.Context {
	t.Helper()

	b, err := ml.NewBackend("cpu", ml.BackendParams{NumThreads: 2})
	if err != nil {
		t.Fatalf("Backend konnte nicht erstellt werden: %v", err)
	}
	t.Cleanup(b.Close)

	ctx := b.NewContext()
	t.Cleanup(ctx.Close)

	return ctx
}

// zeroOpts baut Bloecke mit Null-Gewichten: der Residual-Pfad liefert
// dann null und der Block reduziert sich auf relu(x) bzw. den Shortcut
func zeroOpts() *Options {
	o := &Options{Init: nn.Zeros()}
	o.defaults()
	return o
}

func TestVariantExpansion(t *testing.T) {
	if got := (Basic{}).Expansion(); got != 1 {
		t.Errorf("Basic: erwartete Expansion 1, bekam %d", got)
	}
	if got := (Bottleneck{}).Expansion(); got != 4 {
		t.Errorf("Bottleneck: erwartete Expansion 4, bekam %d", got)
	}
}

func TestDefaultStageConfigs(t *testing.T) {
	configs := DefaultStageConfigs(Basic{}, [4]int{2, 2, 2, 2})

	for s, cfgs := range configs {
		if len(cfgs) != 2 {
			t.Fatalf("Stage %d: erwartete 2 Bloecke, bekam %d", s+1, len(cfgs))
		}

		for i, cfg := range cfgs {
			want := 1
			if s > 0 && i == 0 {
				want = 2
			}
			if cfg.Stride != want {
				t.Errorf("Stage %d Block %d: erwartete Stride %d, bekam %d", s+1, i, want, cfg.Stride)
			}
			if cfg.Conv == nil {
				t.Errorf("Stage %d Block %d: Basic-Default braucht einen Conv-Konstruktor", s+1, i)
			}
		}
	}

	// Bottleneck-Defaults kommen ohne Conv-Konstruktor aus
	if cfg := DefaultStageConfigs(Bottleneck{}, [4]int{3, 4, 6, 3})[1][0]; cfg.Conv != nil || cfg.Stride != 2 {
		t.Errorf("erwartete Conv nil und Stride 2, bekam %v", cfg)
	}
}

func TestBasicBlockIdentity(t *testing.T) {
	ctx := newTestContext(t)

	blk, err := Basic{}.New(ctx, 4, 4, BlockConfig{Conv: PlainConv, Stride: 1}, zeroOpts())
	if err != nil {
		t.Fatalf("Block-Bau fehlgeschlagen: %v", err)
	}

	if blk.(*BasicBlock).Shortcut != nil {
		t.Error("erwartete Identitaets-Shortcut bei gleicher Form")
	}

	x := ctx.FromFloats([]float32{1, -2, 3, -4, 5, -6, 7, -8}, 1, 4, 1, 2)
	got := blk.Forward(ctx, x).Floats()

	want := []float32{1, 0, 3, 0, 5, 0, 7, 0}
	if !slices.Equal(got, want) {
		t.Errorf("erwartete %v, bekam %v", want, got)
	}
}

func TestBasicBlockProjection(t *testing.T) {
	ctx := newTestContext(t)

	blk, err := Basic{}.New(ctx, 4, 8, BlockConfig{Conv: PlainConv, Stride: 2}, zeroOpts())
	if err != nil {
		t.Fatalf("Block-Bau fehlgeschlagen: %v", err)
	}

	b := blk.(*BasicBlock)
	if b.Shortcut == nil {
		t.Fatal("erwartete eine Projektion bei Form-Wechsel")
	}

	if got := b.Conv1.Weight.Shape(); !slices.Equal(got, []int{8, 4, 3, 3}) {
		t.Errorf("Conv1: erwartete Form [8 4 3 3], bekam %v", got)
	}
	if got := b.Conv2.Weight.Shape(); !slices.Equal(got, []int{8, 8, 3, 3}) {
		t.Errorf("Conv2: erwartete Form [8 8 3 3], bekam %v", got)
	}
	if got := b.Shortcut.Conv.Weight.Shape(); !slices.Equal(got, []int{8, 4, 1, 1}) {
		t.Errorf("Shortcut: erwartete Form [8 4 1 1], bekam %v", got)
	}
	if b.Shortcut.Conv.Stride != 2 {
		t.Errorf("Shortcut: erwartete Stride 2, bekam %d", b.Shortcut.Conv.Stride)
	}

	out := blk.Forward(ctx, ctx.Zeros(ml.DTypeF32, 1, 4, 4, 4))
	if got := out.Shape(); !slices.Equal(got, []int{1, 8, 2, 2}) {
		t.Errorf("erwartete Ausgabe-Form [1 8 2 2], bekam %v", got)
	}
}

func TestBasicBlockValidation(t *testing.T) {
	ctx := newTestContext(t)
	opts := zeroOpts()

	if _, err := (Basic{}).New(ctx, 4, 4, BlockConfig{Stride: 1}, opts); err == nil {
		t.Error("erwartete einen Fehler ohne Conv-Konstruktor")
	}
	if _, err := (Basic{}).New(ctx, 4, 4, BlockConfig{Conv: PlainConv}, opts); err == nil {
		t.Error("erwartete einen Fehler ohne Stride")
	}
}

func TestBottleneckBlockIdentity(t *testing.T) {
	ctx := newTestContext(t)

	// inPlanes == 4*planes: kein Shortcut noetig
	blk, err := Bottleneck{}.New(ctx, 8, 2, BlockConfig{Stride: 1}, zeroOpts())
	if err != nil {
		t.Fatalf("Block-Bau fehlgeschlagen: %v", err)
	}

	if blk.(*BottleneckBlock).Shortcut != nil {
		t.Error("erwartete Identitaets-Shortcut bei gleicher Form")
	}

	x := ctx.FromFloats([]float32{1, -1, 2, -2, 3, -3, 4, -4}, 1, 8, 1, 1)
	got := blk.Forward(ctx, x).Floats()

	want := []float32{1, 0, 2, 0, 3, 0, 4, 0}
	if !slices.Equal(got, want) {
		t.Errorf("erwartete %v, bekam %v", want, got)
	}
}

func TestBottleneckBlockProjection(t *testing.T) {
	ctx := newTestContext(t)

	// 4 != 4*4: die Expansion erzwingt eine Projektion trotz Stride 1
	blk, err := Bottleneck{}.New(ctx, 4, 4, BlockConfig{Stride: 1}, zeroOpts())
	if err != nil {
		t.Fatalf("Block-Bau fehlgeschlagen: %v", err)
	}

	b := blk.(*BottleneckBlock)
	if b.Shortcut == nil {
		t.Fatal("erwartete eine Projektion bei Kanal-Expansion")
	}

	if got := b.Conv1.Weight.Shape(); !slices.Equal(got, []int{4, 4, 1, 1}) {
		t.Errorf("Conv1: erwartete Form [4 4 1 1], bekam %v", got)
	}
	if got := b.Conv2.Weight.Shape(); !slices.Equal(got, []int{4, 4, 3, 3}) {
		t.Errorf("Conv2: erwartete Form [4 4 3 3], bekam %v", got)
	}
	if got := b.Conv3.Weight.Shape(); !slices.Equal(got, []int{16, 4, 1, 1}) {
		t.Errorf("Conv3: erwartete Form [16 4 1 1], bekam %v", got)
	}
	if got := b.Shortcut.Conv.Weight.Shape(); !slices.Equal(got, []int{16, 4, 1, 1}) {
		t.Errorf("Shortcut: erwartete Form [16 4 1 1], bekam %v", got)
	}
}

func TestBottleneckBlockDefaults(t *testing.T) {
	ctx := newTestContext(t)

	// Stride 0 bedeutet 1
	blk, err := Bottleneck{}.New(ctx, 8, 2, BlockConfig{}, zeroOpts())
	if err != nil {
		t.Fatalf("Block-Bau fehlgeschlagen: %v", err)
	}
	if got := blk.(*BottleneckBlock).Conv2.Stride; got != 1 {
		t.Errorf("erwartete Stride 1, bekam %d", got)
	}
}

func TestBottleneckBlockValidation(t *testing.T) {
	ctx := newTestContext(t)
	opts := zeroOpts()

	cases := []struct {
		name string
		cfg  BlockConfig
	}{
		{"conv nicht erlaubt", BlockConfig{Conv: PlainConv, Stride: 1}},
		{"attrs nicht erlaubt", BlockConfig{Stride: 1, Attrs: fs.KV{}}},
		{"negativer stride", BlockConfig{Stride: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := (Bottleneck{}).New(ctx, 8, 2, tc.cfg, opts); err == nil {
				t.Error("erwartete einen Fehler")
			}
		})
	}
}

func TestProjectionNilIsIdentity(t *testing.T) {
	ctx := newTestContext(t)

	var p *Projection
	x := ctx.FromFloats([]float32{1, 2}, 1, 1, 1, 2)

	if got := p.Forward(ctx, x); got != x {
		t.Error("nil-Projektion muss die Eingabe unveraendert durchreichen")
	}
}

func TestBuildStageChannelThreading(t *testing.T) {
	ctx := newTestContext(t)

	cfgs := DefaultStageConfigs(Bottleneck{}, [4]int{3, 4, 6, 3})[0]

	blocks, inPlanes, err := buildStage(ctx, Bottleneck{}, 64, 64, 3, cfgs, zeroOpts())
	if err != nil {
		t.Fatalf("Stage-Bau fehlgeschlagen: %v", err)
	}

	if len(blocks) != 3 {
		t.Errorf("erwartete 3 Bloecke, bekam %d", len(blocks))
	}

	// Nach der Stage laeuft die Kanalzahl auf planes mal Expansion
	if inPlanes != 256 {
		t.Errorf("erwartete 256 Kanaele, bekam %d", inPlanes)
	}
}

func TestArchitectures(t *testing.T) {
	ctx := newTestContext(t)

	cases := []struct {
		name       string
		build      func(ml.Context, StageConfigs, Options) (*ResNet, error)
		counts     [4]int
		head       int
		bottleneck bool
	}{
		{"resnet18", NewResNet18, [4]int{2, 2, 2, 2}, 512, false},
		{"resnet34", NewResNet34, [4]int{3, 4, 6, 3}, 512, false},
		{"resnet50", NewResNet50, [4]int{3, 4, 6, 3}, 2048, true},
		{"resnet101", NewResNet101, [4]int{3, 4, 23, 3}, 2048, true},
		{"resnet152", NewResNet152, [4]int{3, 8, 36, 3}, 2048, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if testing.Short() && tc.counts[2] > 6 {
				t.Skip("grosse Architektur im Kurzlauf uebersprungen")
			}

			m, err := tc.build(ctx, StageConfigs{}, Options{Init: nn.Zeros()})
			if err != nil {
				t.Fatalf("Bau fehlgeschlagen: %v", err)
			}

			for s, stage := range m.stages() {
				if len(stage) != tc.counts[s] {
					t.Errorf("Stage %d: erwartete %d Bloecke, bekam %d", s+1, tc.counts[s], len(stage))
				}
			}

			if _, ok := m.Layer1[0].(*BottleneckBlock); ok != tc.bottleneck {
				t.Errorf("unerwartete Block-Bauweise %T", m.Layer1[0])
			}

			if got := m.Output.Weight.Shape(); !slices.Equal(got, []int{10, tc.head}) {
				t.Errorf("Kopf: erwartete Form [10 %d], bekam %v", tc.head, got)
			}

			if err := m.Validate(); err != nil {
				t.Errorf("Validate fehlgeschlagen: %v", err)
			}
		})
	}
}

func TestResNet18Shortcuts(t *testing.T) {
	ctx := newTestContext(t)

	m, err := NewResNet18(ctx, StageConfigs{}, Options{Init: nn.Zeros()})
	if err != nil {
		t.Fatalf("Bau fehlgeschlagen: %v", err)
	}

	// Stage 1 wechselt weder Form noch Aufloesung
	if m.Layer1[0].(*BasicBlock).Shortcut != nil {
		t.Error("Layer1[0]: erwartete keinen Shortcut")
	}

	// Der erste Block der Stages 2-4 halbiert die Aufloesung
	if m.Layer2[0].(*BasicBlock).Shortcut == nil {
		t.Error("Layer2[0]: erwartete eine Projektion")
	}
	if m.Layer2[1].(*BasicBlock).Shortcut != nil {
		t.Error("Layer2[1]: erwartete keinen Shortcut")
	}
}

func TestResNet50ChannelFlow(t *testing.T) {
	ctx := newTestContext(t)

	m, err := NewResNet50(ctx, StageConfigs{}, Options{Init: nn.Zeros()})
	if err != nil {
		t.Fatalf("Bau fehlgeschlagen: %v", err)
	}

	// Die Expansion erzwingt schon im ersten Block eine Projektion
	if m.Layer1[0].(*BottleneckBlock).Shortcut == nil {
		t.Error("Layer1[0]: erwartete eine Projektion")
	}
	if m.Layer1[1].(*BottleneckBlock).Shortcut != nil {
		t.Error("Layer1[1]: erwartete keinen Shortcut")
	}

	// Folge-Bloecke starten auf den expandierten Kanaelen
	if got := m.Layer1[1].(*BottleneckBlock).Conv1.Weight.Shape(); !slices.Equal(got, []int{64, 256, 1, 1}) {
		t.Errorf("Layer1[1].Conv1: erwartete Form [64 256 1 1], bekam %v", got)
	}
	if got := m.Layer2[0].(*BottleneckBlock).Conv1.Weight.Shape(); !slices.Equal(got, []int{128, 256, 1, 1}) {
		t.Errorf("Layer2[0].Conv1: erwartete Form [128 256 1 1], bekam %v", got)
	}
}

func TestForward(t *testing.T) {
	ctx := newTestContext(t)

	m, err := NewResNet18(ctx, StageConfigs{}, Options{})
	if err != nil {
		t.Fatalf("Bau fehlgeschlagen: %v", err)
	}

	// Null-Eingabe ergibt exakt Null-Logits: alle Bias-Terme sind null
	x := ctx.Zeros(ml.DTypeF32, 2, 3, 32, 32)

	logits, err := m.Forward(ctx, x)
	if err != nil {
		t.Fatalf("Forward fehlgeschlagen: %v", err)
	}
	if got := logits.Shape(); !slices.Equal(got, []int{2, 10}) {
		t.Fatalf("erwartete Form [2 10], bekam %v", got)
	}
	for i, v := range logits.Floats() {
		if v != 0 {
			t.Errorf("Logit %d: erwartete 0, bekam %g", i, v)
		}
	}

	// Null-Logits ergeben Gleichverteilung ueber die 10 Klassen
	cls, err := model.Predict(ctx, m, x)
	if err != nil {
		t.Fatalf("Predict fehlgeschlagen: %v", err)
	}
	if len(cls) != 2 {
		t.Fatalf("erwartete 2 Ergebnisse, bekam %d", len(cls))
	}
	for i, c := range cls {
		if c.Class != 0 {
			t.Errorf("Bild %d: erwartete Klasse 0, bekam %d", i, c.Class)
		}
		if diff := float64(c.Confidence - 0.1); math.Abs(diff) > 1e-5 {
			t.Errorf("Bild %d: erwartete Konfidenz 0.1, bekam %g", i, c.Confidence)
		}
	}
}

func TestForwardFinite(t *testing.T) {
	ctx := newTestContext(t)

	m, err := NewResNet18(ctx, StageConfigs{}, Options{})
	if err != nil {
		t.Fatalf("Bau fehlgeschlagen: %v", err)
	}

	vals := make([]float32, 3*32*32)
	for i := range vals {
		vals[i] = 1
	}
	x := ctx.FromFloats(vals, 1, 3, 32, 32)

	logits, err := m.Forward(ctx, x)
	if err != nil {
		t.Fatalf("Forward fehlgeschlagen: %v", err)
	}

	for i, v := range logits.Floats() {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			t.Errorf("Logit %d ist nicht endlich: %g", i, v)
		}
	}
}

func TestForwardBottleneck(t *testing.T) {
	if testing.Short() {
		t.Skip("voller Bottleneck-Durchlauf im Kurzlauf uebersprungen")
	}

	ctx := newTestContext(t)

	m, err := NewResNet50(ctx, StageConfigs{}, Options{})
	if err != nil {
		t.Fatalf("Bau fehlgeschlagen: %v", err)
	}

	logits, err := m.Forward(ctx, ctx.Zeros(ml.DTypeF32, 1, 3, 32, 32))
	if err != nil {
		t.Fatalf("Forward fehlgeschlagen: %v", err)
	}
	if got := logits.Shape(); !slices.Equal(got, []int{1, 10}) {
		t.Errorf("erwartete Form [1 10], bekam %v", got)
	}
}

func TestForwardInputValidation(t *testing.T) {
	ctx := newTestContext(t)

	m, err := NewResNet18(ctx, StageConfigs{}, Options{Init: nn.Zeros()})
	if err != nil {
		t.Fatalf("Bau fehlgeschlagen: %v", err)
	}

	// Falsche Kanalzahl
	if _, err := m.Forward(ctx, ctx.Zeros(ml.DTypeF32, 1, 1, 32, 32)); err == nil {
		t.Error("erwartete einen Fehler bei 1 Kanal")
	}

	// Falscher Rang
	if _, err := m.Forward(ctx, ctx.Zeros(ml.DTypeF32, 3, 32, 32)); err == nil {
		t.Error("erwartete einen Fehler bei 3D-Eingabe")
	}

	// 16x16 schrumpft auf 2x2 statt 4x4
	_, err = m.Forward(ctx, ctx.Zeros(ml.DTypeF32, 1, 3, 16, 16))
	if err == nil || !strings.Contains(err.Error(), "2x2") {
		t.Errorf("erwartete einen 2x2-Fehler, bekam %v", err)
	}
}

func TestDeterministicInit(t *testing.T) {
	ctx := newTestContext(t)

	a, err := NewResNet18(ctx, StageConfigs{}, Options{})
	if err != nil {
		t.Fatalf("Bau fehlgeschlagen: %v", err)
	}
	b, err := NewResNet18(ctx, StageConfigs{}, Options{})
	if err != nil {
		t.Fatalf("Bau fehlgeschlagen: %v", err)
	}

	at := model.Tensors(a)
	bt := model.Tensors(b)

	for _, name := range []string{"stem.weight", "layer1.0.conv1.weight", "output.weight"} {
		if at[name] == nil || bt[name] == nil {
			t.Fatalf("Tensor %q fehlt", name)
		}
		if !slices.Equal(at[name].Floats(), bt[name].Floats()) {
			t.Errorf("%s: gleicher Seed sollte gleiche Gewichte liefern", name)
		}
	}

	c, err := NewResNet18(ctx, StageConfigs{}, Options{Init: nn.KaimingUniform(9)})
	if err != nil {
		t.Fatalf("Bau fehlgeschlagen: %v", err)
	}
	if slices.Equal(model.Tensors(c)["stem.weight"].Floats(), at["stem.weight"].Floats()) {
		t.Error("anderer Seed sollte andere Gewichte liefern")
	}
}

func TestCopyWeightsBetweenModels(t *testing.T) {
	ctx := newTestContext(t)

	src, err := NewResNet18(ctx, StageConfigs{}, Options{})
	if err != nil {
		t.Fatalf("Bau fehlgeschlagen: %v", err)
	}
	dst, err := NewResNet18(ctx, StageConfigs{}, Options{Init: nn.Zeros()})
	if err != nil {
		t.Fatalf("Bau fehlgeschlagen: %v", err)
	}

	if err := model.CopyWeights(dst, src); err != nil {
		t.Fatalf("CopyWeights fehlgeschlagen: %v", err)
	}

	st := model.Tensors(src)
	dt := model.Tensors(dst)
	for _, name := range []string{"stem.weight", "layer4.1.conv2.weight", "output.bias"} {
		if !slices.Equal(st[name].Floats(), dt[name].Floats()) {
			t.Errorf("%s wurde nicht kopiert", name)
		}
	}
}

func TestStageConfigLength(t *testing.T) {
	ctx := newTestContext(t)

	var configs StageConfigs
	configs[0] = make([]BlockConfig, 3)

	_, err := NewResNet18(ctx, configs, Options{Init: nn.Zeros()})
	if err == nil || !strings.Contains(err.Error(), "got 3 block configs, want 2") {
		t.Errorf("erwartete einen Laengen-Fehler, bekam %v", err)
	}
	if !strings.Contains(err.Error(), "stage 1") {
		t.Errorf("erwartete den Stage-Kontext im Fehler, bekam %v", err)
	}
}

func TestStageConfigMissingConv(t *testing.T) {
	ctx := newTestContext(t)

	// Explizite Basic-Konfigurationen muessen den Konstruktor setzen
	var configs StageConfigs
	configs[0] = make([]BlockConfig, 2)

	_, err := NewResNet18(ctx, configs, Options{Init: nn.Zeros()})
	if err == nil || !strings.Contains(err.Error(), "conv constructor") {
		t.Errorf("erwartete einen Konstruktor-Fehler, bekam %v", err)
	}
}

func TestCustomConvFunc(t *testing.T) {
	ctx := newTestContext(t)

	type call struct {
		in, out, stride int
		wide            bool
	}

	var calls []call
	conv := func(ctx ml.Context, init nn.InitFn, inChannels, outChannels, kernel, stride, padding int, attrs fs.Config) (*nn.Conv2D, error) {
		calls = append(calls, call{
			in:     inChannels,
			out:    outChannels,
			stride: stride,
			wide:   attrs != nil && attrs.Bool("wide"),
		})
		return nn.NewConv2D(ctx, init, inChannels, outChannels, kernel, stride, padding)
	}

	var configs StageConfigs
	configs[0] = []BlockConfig{
		{Conv: conv, Stride: 1, Attrs: fs.KV{"wide": true}},
		{Conv: conv, Stride: 1},
	}

	if _, err := NewResNet18(ctx, configs, Options{Init: nn.Zeros()}); err != nil {
		t.Fatalf("Bau fehlgeschlagen: %v", err)
	}

	// Der Konstruktor greift nur fuer die erste Faltung jedes Blocks
	want := []call{
		{in: 64, out: 64, stride: 1, wide: true},
		{in: 64, out: 64, stride: 1, wide: false},
	}
	if !slices.Equal(calls, want) {
		t.Errorf("erwartete Aufrufe %v, bekam %v", want, calls)
	}
}

func TestValidate(t *testing.T) {
	m := &ResNet{}
	if err := m.Validate(); err == nil || !strings.Contains(err.Error(), "stem") {
		t.Errorf("erwartete einen Stem-Fehler, bekam %v", err)
	}

	ctx := newTestContext(t)

	stem, err := nn.NewConv2D(ctx, nn.Zeros(), 3, 64, 3, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	norm, err := nn.NewBatchNorm2D(ctx, 64, 1e-5)
	if err != nil {
		t.Fatal(err)
	}

	m = &ResNet{Stem: stem, Norm: norm}
	if err := m.Validate(); err == nil || !strings.Contains(err.Error(), "stage 1") {
		t.Errorf("erwartete einen Stage-Fehler, bekam %v", err)
	}

	blocks := []Block{&BasicBlock{}}
	m = &ResNet{Stem: stem, Norm: norm, Layer1: blocks, Layer2: blocks, Layer3: blocks, Layer4: blocks}
	if err := m.Validate(); err == nil || !strings.Contains(err.Error(), "classifier") {
		t.Errorf("erwartete einen Kopf-Fehler, bekam %v", err)
	}
}

func TestRegistry(t *testing.T) {
	ctx := newTestContext(t)

	m, err := model.New(ctx, fs.KV{
		"architecture": "resnet18",
		"num_classes":  uint32(2),
		"epsilon":      float32(1e-4),
		"seed":         uint32(7),
	})
	if err != nil {
		t.Fatalf("New fehlgeschlagen: %v", err)
	}

	r, ok := m.(*ResNet)
	if !ok {
		t.Fatalf("erwartete *ResNet, bekam %T", m)
	}

	if r.Classes != 2 {
		t.Errorf("erwartete 2 Klassen, bekam %d", r.Classes)
	}
	if r.Eps != 1e-4 {
		t.Errorf("erwartete Eps 1e-4, bekam %g", r.Eps)
	}
	if got := r.Output.Weight.Shape(); !slices.Equal(got, []int{2, 512}) {
		t.Errorf("Kopf: erwartete Form [2 512], bekam %v", got)
	}
}
