// Package resnet - Residual-Bloecke und Varianten
//
// Diese Datei enthaelt:
// - BlockConfig: Pro-Block Konfiguration mit Faltungskonstruktor
// - Variant: Interface fuer Block-Bauweisen
// - Basic/Bottleneck: Die beiden Bauweisen
// - BasicBlock: Zwei 3x3 Faltungen fuer ResNet-18/34
// - BottleneckBlock: 1x1/3x3/1x1 Engpass fuer ResNet-50/101/152
// - Projection: Shortcut-Anpassung bei Form-Wechsel

package resnet

import (
	"errors"
	"fmt"

	"github.com/strata-ml/strata/fs"
	"github.com/strata-ml/strata/ml"
	"github.com/strata-ml/strata/ml/nn"
)

// ConvFunc baut eine Faltungsschicht. Eigene Konstruktoren koennen
// ueber attrs zusaetzliche Parameter beziehen, der Standard ist
// PlainConv.
type ConvFunc func(ctx ml.Context, init nn.InitFn, inChannels, outChannels, kernel, stride, padding int, attrs fs.Config) (*nn.Conv2D, error)

// PlainConv ist der Standard-Faltungskonstruktor, attrs bleibt ungenutzt
func PlainConv(ctx ml.Context, init nn.InitFn, inChannels, outChannels, kernel, stride, padding int, attrs fs.Config) (*nn.Conv2D, error) {
	return nn.NewConv2D(ctx, init, inChannels, outChannels, kernel, stride, padding)
}

// BlockConfig konfiguriert einen einzelnen Block einer Stage.
// Basic-Bloecke verlangen Conv und Stride, Bottleneck-Bloecke nur
// den Stride.
type BlockConfig struct {
	Conv   ConvFunc  // Konstruktor der ersten Faltung (nur Basic)
	Stride int       // Stride der raumreduzierenden Faltung
	Attrs  fs.Config // Zusatz-Parameter fuer eigene Konstruktoren
}

// Block ist ein einzelner Residual-Block innerhalb einer Stage
type Block interface {
	Forward(ctx ml.Context, t ml.Tensor) ml.Tensor
}

// Variant ist eine Block-Bauweise: sie kennt ihren Expansionsfaktor
// und baut Bloecke aus einer BlockConfig
type Variant interface {
	// Expansion ist das Verhaeltnis von Ausgabe- zu Basis-Kanaelen
	Expansion() int

	// DefaultConfig liefert die Standard-Konfiguration fuer einen Block
	DefaultConfig(stride int) BlockConfig

	// New baut einen Block von inPlanes auf planes Basis-Kanaele
	New(ctx ml.Context, inPlanes, planes int, cfg BlockConfig, opts *Options) (Block, error)
}

// Projection gleicht Form-Unterschiede auf dem Shortcut-Pfad aus:
// 1x1 Faltung mit Stride plus Batch-Normalisierung. Ein nil-Shortcut
// ist die Identitaet.
type Projection struct {
	Conv *nn.Conv2D
	Norm *nn.BatchNorm2D
}

// newProjection baut den Shortcut von in auf out Kanaele
func newProjection(ctx ml.Context, init nn.InitFn, in, out, stride int, eps float32) (*Projection, error) {
	conv, err := nn.NewConv2D(ctx, init, in, out, 1, stride, 0)
	if err != nil {
		return nil, err
	}

	norm, err := nn.NewBatchNorm2D(ctx, out, eps)
	if err != nil {
		return nil, err
	}

	return &Projection{Conv: conv, Norm: norm}, nil
}

// Forward projiziert die Eingabe, oder reicht sie unveraendert durch
func (p *Projection) Forward(ctx ml.Context, t ml.Tensor) ml.Tensor {
	if p == nil {
		return t
	}

	return p.Norm.Forward(ctx, p.Conv.Forward(ctx, t))
}

// Basic baut BasicBlocks, Expansion 1
type Basic struct{}

// Expansion gibt den Expansionsfaktor zurueck
func (Basic) Expansion() int { return 1 }

// DefaultConfig liefert einen 3x3-Block mit PlainConv
func (Basic) DefaultConfig(stride int) BlockConfig {
	return BlockConfig{Conv: PlainConv, Stride: stride}
}

// New baut einen BasicBlock. Conv und Stride sind Pflichtfelder.
func (Basic) New(ctx ml.Context, inPlanes, planes int, cfg BlockConfig, opts *Options) (Block, error) {
	if cfg.Conv == nil {
		return nil, errors.New("basic block requires a conv constructor")
	}
	if cfg.Stride < 1 {
		return nil, fmt.Errorf("basic block requires stride >= 1, got %d", cfg.Stride)
	}

	conv1, err := cfg.Conv(ctx, opts.Init, inPlanes, planes, 3, cfg.Stride, 1, cfg.Attrs)
	if err != nil {
		return nil, err
	}

	norm1, err := nn.NewBatchNorm2D(ctx, planes, opts.Eps)
	if err != nil {
		return nil, err
	}

	// Die zweite Faltung ist immer eine einfache 3x3 mit Stride 1
	conv2, err := nn.NewConv2D(ctx, opts.Init, planes, planes, 3, 1, 1)
	if err != nil {
		return nil, err
	}

	norm2, err := nn.NewBatchNorm2D(ctx, planes, opts.Eps)
	if err != nil {
		return nil, err
	}

	b := &BasicBlock{Conv1: conv1, Norm1: norm1, Conv2: conv2, Norm2: norm2}

	if cfg.Stride != 1 || inPlanes != planes {
		b.Shortcut, err = newProjection(ctx, opts.Init, inPlanes, planes, cfg.Stride, opts.Eps)
		if err != nil {
			return nil, err
		}
	}

	return b, nil
}

// BasicBlock besteht aus zwei 3x3 Faltungen mit Batch-Normalisierung
// und Residual-Verbindung
type BasicBlock struct {
	Conv1 *nn.Conv2D
	Norm1 *nn.BatchNorm2D
	Conv2 *nn.Conv2D
	Norm2 *nn.BatchNorm2D

	Shortcut *Projection
}

// Forward berechnet relu(bn2(conv2(relu(bn1(conv1(x))))) + shortcut(x))
func (b *BasicBlock) Forward(ctx ml.Context, t ml.Tensor) ml.Tensor {
	out := b.Norm1.Forward(ctx, b.Conv1.Forward(ctx, t)).RELU(ctx)
	out = b.Norm2.Forward(ctx, b.Conv2.Forward(ctx, out))
	out = out.Add(ctx, b.Shortcut.Forward(ctx, t))
	return out.RELU(ctx)
}

// Bottleneck baut BottleneckBlocks, Expansion 4
type Bottleneck struct{}

// Expansion gibt den Expansionsfaktor zurueck
func (Bottleneck) Expansion() int { return 4 }

// DefaultConfig liefert einen Engpass-Block mit dem angegebenen Stride
func (Bottleneck) DefaultConfig(stride int) BlockConfig {
	return BlockConfig{Stride: stride}
}

// New baut einen BottleneckBlock. Die Faltungen sind fest verdrahtet,
// nur der Stride ist konfigurierbar; Stride 0 bedeutet 1.
func (Bottleneck) New(ctx ml.Context, inPlanes, planes int, cfg BlockConfig, opts *Options) (Block, error) {
	if cfg.Conv != nil {
		return nil, errors.New("bottleneck block does not take a conv constructor")
	}
	if cfg.Attrs != nil {
		return nil, errors.New("bottleneck block does not take conv attributes")
	}

	stride := cfg.Stride
	if stride == 0 {
		stride = 1
	}
	if stride < 0 {
		return nil, fmt.Errorf("bottleneck block requires stride >= 1, got %d", cfg.Stride)
	}

	conv1, err := nn.NewConv2D(ctx, opts.Init, inPlanes, planes, 1, 1, 0)
	if err != nil {
		return nil, err
	}

	norm1, err := nn.NewBatchNorm2D(ctx, planes, opts.Eps)
	if err != nil {
		return nil, err
	}

	conv2, err := nn.NewConv2D(ctx, opts.Init, planes, planes, 3, stride, 1)
	if err != nil {
		return nil, err
	}

	norm2, err := nn.NewBatchNorm2D(ctx, planes, opts.Eps)
	if err != nil {
		return nil, err
	}

	conv3, err := nn.NewConv2D(ctx, opts.Init, planes, 4*planes, 1, 1, 0)
	if err != nil {
		return nil, err
	}

	norm3, err := nn.NewBatchNorm2D(ctx, 4*planes, opts.Eps)
	if err != nil {
		return nil, err
	}

	b := &BottleneckBlock{
		Conv1: conv1, Norm1: norm1,
		Conv2: conv2, Norm2: norm2,
		Conv3: conv3, Norm3: norm3,
	}

	if stride != 1 || inPlanes != 4*planes {
		b.Shortcut, err = newProjection(ctx, opts.Init, inPlanes, 4*planes, stride, opts.Eps)
		if err != nil {
			return nil, err
		}
	}

	return b, nil
}

// BottleneckBlock reduziert mit 1x1 auf planes Kanaele, faltet 3x3
// und expandiert mit 1x1 auf das Vierfache
type BottleneckBlock struct {
	Conv1 *nn.Conv2D
	Norm1 *nn.BatchNorm2D
	Conv2 *nn.Conv2D
	Norm2 *nn.BatchNorm2D
	Conv3 *nn.Conv2D
	Norm3 *nn.BatchNorm2D

	Shortcut *Projection
}

// Forward berechnet den Engpass-Pfad mit Residual-Verbindung, ReLU
// nach den ersten beiden Normalisierungen und nach der Addition
func (b *BottleneckBlock) Forward(ctx ml.Context, t ml.Tensor) ml.Tensor {
	out := b.Norm1.Forward(ctx, b.Conv1.Forward(ctx, t)).RELU(ctx)
	out = b.Norm2.Forward(ctx, b.Conv2.Forward(ctx, out)).RELU(ctx)
	out = b.Norm3.Forward(ctx, b.Conv3.Forward(ctx, out))
	out = out.Add(ctx, b.Shortcut.Forward(ctx, t))
	return out.RELU(ctx)
}
