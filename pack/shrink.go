package pack

import "math"

// tolerableAreaDifferencePercent is the percentage by which the destination
// image's area may exceed the summed area of its rectangles before shrinking
// stops being worthwhile.
const tolerableAreaDifferencePercent = 2

// reduceLastImageSize bisects toward the smallest size of the last
// destination image that still fits its rectangles.
//
// rectsArea is the summed area of the rectangles on the last image, which is
// the hard lower bound for its size. Starting from an estimate derived from
// that area and the destination's aspect ratio, the candidate size shrinks
// after every successful repack and grows after every failed one, with the
// step halving each iteration. The final state is always a valid packing:
// when the loop ends on a failure, the last successful size is restored and
// repacked.
func (p *Packer) reduceLastImageSize(rectsArea int) {
	if rectsArea == 0 {
		return
	}

	currentArea := p.imageWidth * p.imageHeight

	// Not worth optimizing when the image is already close to minimal.
	if currentArea*100/rectsArea < 100+tolerableAreaDifferencePercent {
		return
	}

	// Only rectangles on the last image are repacked.
	imageIndex := p.Result.ImagesNeeded - 1

	// Estimate the minimal dimensions that preserve the destination's
	// aspect ratio. The +1 absorbs truncation so the estimate never
	// undershoots.
	imageRatio := float64(p.imageWidth) / float64(p.imageHeight)
	neededWidth := int(math.Sqrt(float64(rectsArea)*imageRatio)) + 1
	neededHeight := int(math.Sqrt(float64(rectsArea)/imageRatio)) + 1

	// The search starts halfway between the nominal size and the estimate.
	deltaWidth := (p.imageWidth - neededWidth) / 2
	deltaHeight := (p.imageHeight - neededHeight) / 2

	lastSuccessfulWidth := p.imageWidth
	lastSuccessfulHeight := p.imageHeight

	for deltaWidth != 0 && deltaHeight != 0 {
		// Shrink after a success, grow back after a failure.
		if lastSuccessfulWidth == p.Result.LastImageWidth {
			p.Result.LastImageWidth -= deltaWidth
			p.Result.LastImageHeight -= deltaHeight
		} else {
			p.Result.LastImageWidth += deltaWidth
			p.Result.LastImageHeight += deltaHeight
		}

		p.areas.reset(p.Result.LastImageWidth, p.Result.LastImageHeight)

		failedToPack := false
		for _, rect := range p.sorted {
			if rect.ImageIndex != imageIndex {
				continue
			}
			if !p.packRect(rect, p.Options.AllowRotation) {
				failedToPack = true
				break
			}
		}

		if !failedToPack {
			lastSuccessfulWidth = p.Result.LastImageWidth
			lastSuccessfulHeight = p.Result.LastImageHeight

			// Close enough to the minimal area, stop searching.
			areaPercentage := lastSuccessfulWidth * lastSuccessfulHeight * 100 / rectsArea
			if areaPercentage < 100+tolerableAreaDifferencePercent {
				return
			}
		}

		deltaWidth /= 2
		deltaHeight /= 2
	}

	// The loop may have ended on a failed attempt. Repack at the last
	// size known to work so the packer never ends in an invalid state.
	if lastSuccessfulWidth != p.Result.LastImageWidth {
		p.Result.LastImageWidth = lastSuccessfulWidth
		p.Result.LastImageHeight = lastSuccessfulHeight

		p.areas.reset(p.Result.LastImageWidth, p.Result.LastImageHeight)

		for _, rect := range p.sorted {
			if rect.ImageIndex != imageIndex {
				continue
			}
			p.packRect(rect, p.Options.AllowRotation)
		}
	}
}
