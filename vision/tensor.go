// MODUL: tensor
// ZWECK: Bruecke von Bildern zu Backend-Tensoren
// INPUT: ml.Context, Normalisierungs-Parameter, dekodierte Bilder
// OUTPUT: (N, 3, H, W) Tensor fuer den Modell-Forward
// NEBENEFFEKTE: keine
// ABHAENGIGKEITEN: ml (intern)
// HINWEISE: Alle Bilder eines Batches muessen die gleiche Groesse haben

package vision

import (
	"errors"
	"fmt"

	"github.com/strata-ml/strata/ml"
)

// ToTensor normalisiert Bilder und stapelt sie zu einem (N, 3, H, W)
// Tensor in CHW-Reihenfolge
func ToTensor(ctx ml.Context, mean, std [3]float32, imgs ...*ImageInput) (ml.Tensor, error) {
	if len(imgs) == 0 {
		return nil, errors.New("keine Bilder uebergeben")
	}

	h, w := imgs[0].Height, imgs[0].Width

	data := make([]float32, 0, len(imgs)*3*h*w)
	for i, img := range imgs {
		if img.Height != h || img.Width != w {
			return nil, fmt.Errorf("bild %d hat Groesse %dx%d, erwartet %dx%d", i, img.Width, img.Height, w, h)
		}

		data = append(data, NormalizeRGB(img, mean, std)...)
	}

	return ctx.FromFloats(data, len(imgs), 3, h, w), nil
}
