// Package stego orchestrates the full embed and extract pipelines: frame
// construction, ChaCha20 encryption, repetition coding, per-block DCT, and
// quantization-aware bit modulation.
package stego

import (
	"image"
	"runtime"
	"sync"
	"time"

	"stegojpeg/pkg/bitchannel"
	"stegojpeg/pkg/dct"
	"stegojpeg/pkg/frame"
	"stegojpeg/pkg/imagecodec"
	"stegojpeg/pkg/models"
	"stegojpeg/pkg/quant"
	"stegojpeg/pkg/repetition"
	"stegojpeg/pkg/stegocipher"
)

// Options configures Embed and Extract beyond their required arguments.
type Options struct {
	// Quality is the JPEG quality (1-100) both operations use to derive
	// the per-coefficient modulation strength. Extract must be given the
	// same quality that Embed used.
	Quality int
	// Workers bounds how many goroutines process blocks concurrently.
	// Zero or negative selects runtime.GOMAXPROCS(0).
	Workers int
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

type blockSlot struct {
	bx, by int
	pos    bitchannel.Position
}

// planSlots enumerates (block, position) targets in row-major block order,
// then position order within each block; this ordering is the wire
// convention both Embed and Extract must agree on.
func planSlots(blockCols, blockRows int) []blockSlot {
	slots := make([]blockSlot, 0, blockCols*blockRows*len(bitchannel.Positions))
	for by := 0; by < blockRows; by++ {
		for bx := 0; bx < blockCols; bx++ {
			for _, pos := range bitchannel.Positions {
				slots = append(slots, blockSlot{bx: bx, by: by, pos: pos})
			}
		}
	}
	return slots
}

// Capacity returns the number of raw channel bit slots available in an
// image of the given pixel dimensions, and the resulting payload capacity
// in bytes once the repetition code and frame header are accounted for.
func Capacity(width, height int) (channelBits int, payloadBytes int) {
	cols, rows := width/8, height/8
	channelBits = cols * rows * len(bitchannel.Positions)
	payloadBits := channelBits / repetition.R
	payloadBytes = payloadBits/8 - frame.HeaderSize
	if payloadBytes < 0 {
		payloadBytes = 0
	}
	return
}

// Embed hides plaintext inside cover, encrypted under key, and returns a
// re-encoded JPEG at the requested quality. Embed never generates a key:
// a zero-value key is used as given. Callers that want a fresh key call
// stegocipher.GenerateKey and pass it in.
func Embed(cover image.Image, plaintext []byte, key stegocipher.Key, opts Options) ([]byte, *models.EmbedReport, error) {
	start := time.Now()

	if opts.Quality < 1 || opts.Quality > 100 {
		return nil, nil, newErr(InvalidQuality, "quality must be in [1,100]", nil)
	}

	nonce, err := stegocipher.GenerateNonce()
	if err != nil {
		return nil, nil, newErr(IOError, "generating nonce", err)
	}
	ciphertext, err := stegocipher.XORKeyStream(key, nonce, plaintext)
	if err != nil {
		return nil, nil, newErr(InvalidKey, "encrypting payload", err)
	}

	f := frame.Frame{Ciphertext: ciphertext}
	copy(f.Nonce[:], nonce[:])
	raw := f.Serialize()
	payloadBits := frame.BytesToBits(raw)
	channelBits := repetition.Encode(payloadBits)

	ycc := imagecodec.FromImage(cover)
	blockCols, blockRows := ycc.Y.BlockCount()
	slots := planSlots(blockCols, blockRows)

	report := &models.EmbedReport{
		CoverWidth:      ycc.Y.Width,
		CoverHeight:     ycc.Y.Height,
		Quality:         opts.Quality,
		PayloadBytes:    len(plaintext),
		BlocksAvailable: blockCols * blockRows,
	}

	if len(channelBits) > len(slots) {
		return nil, report, newErr(CapacityExceeded, "payload requires more channel bits than the cover provides", nil)
	}

	table := quant.New(opts.Quality)
	blocksTouched := touchedBlockSet(slots[:len(channelBits)])
	report.BlocksUsed = len(blocksTouched)
	_, capBytes := Capacity(ycc.Y.Width, ycc.Y.Height)
	report.CapacityBytes = capBytes
	if capBytes-len(plaintext) < capBytes/10 {
		report.AddFinding("payload uses more than 90% of available capacity", "warning", 1.0)
	}

	writeBits := make([]int, len(slots))
	for i := range writeBits {
		writeBits[i] = -1
	}
	for i, bit := range channelBits {
		writeBits[i] = bit
	}

	if err := processBlocks(blocksTouched, opts.workers(), func(bx, by int) {
		block := ycc.Y.Block(bx, by)
		coeffs := dct.Forward(dct.Block(block))
		for i, slot := range slots {
			if slot.bx != bx || slot.by != by || writeBits[i] < 0 {
				continue
			}
			s := table.Strength(slot.pos.U, slot.pos.V)
			coeffs[slot.pos.U][slot.pos.V] = bitchannel.Modulate(coeffs[slot.pos.U][slot.pos.V], writeBits[i], s)
		}
		spatial := dct.Inverse(coeffs)
		ycc.Y.SetBlock(bx, by, [8][8]float64(spatial))
	}); err != nil {
		return nil, report, err
	}

	out, err := imagecodec.EncodeJPEG(ycc, opts.Quality)
	if err != nil {
		return nil, report, newErr(IOError, "encoding stego jpeg", err)
	}

	report.Duration = time.Since(start)
	return out, report, nil
}

// Extract recovers a plaintext payload previously embedded by Embed.
// expectedLen, if non-nil, caps how much recovered ciphertext is trusted
// beyond the frame's own declared length; pass nil to trust the frame.
func Extract(stegoJPEG []byte, key stegocipher.Key, opts Options, expectedLen *int) ([]byte, *models.ExtractReport, error) {
	start := time.Now()

	if opts.Quality < 1 || opts.Quality > 100 {
		return nil, nil, newErr(InvalidQuality, "quality must be in [1,100]", nil)
	}

	ycc, err := imagecodec.Decode(stegoJPEG)
	if err != nil {
		return nil, nil, newErr(InvalidImage, "decoding stego image", err)
	}

	blockCols, blockRows := ycc.Y.BlockCount()
	slots := planSlots(blockCols, blockRows)
	table := quant.New(opts.Quality)

	channelBits := make([]int, len(slots))
	var mu sync.Mutex
	allBlocks := touchedBlockSet(slots)
	if err := processBlocks(allBlocks, opts.workers(), func(bx, by int) {
		coeffs := dct.Forward(dct.Block(ycc.Y.Block(bx, by)))
		local := make(map[int]int)
		for i, slot := range slots {
			if slot.bx != bx || slot.by != by {
				continue
			}
			s := table.Strength(slot.pos.U, slot.pos.V)
			local[i] = bitchannel.Demodulate(coeffs[slot.pos.U][slot.pos.V], s)
		}
		mu.Lock()
		for i, b := range local {
			channelBits[i] = b
		}
		mu.Unlock()
	}); err != nil {
		return nil, nil, err
	}

	usableLen := (len(channelBits) / repetition.R) * repetition.R
	payloadBits, dissent := repetition.DecodeWithStats(channelBits[:usableLen])
	usableBits := (len(payloadBits) / 8) * 8
	raw := frame.BitsToBytes(payloadBits[:usableBits])

	f, err := frame.Parse(raw)
	if err != nil {
		return nil, nil, newErr(FrameCorrupt, "parsing recovered frame", err)
	}

	ciphertext := f.Ciphertext
	if expectedLen != nil && *expectedLen < len(ciphertext) {
		ciphertext = ciphertext[:*expectedLen]
	}

	plaintext, err := stegocipher.XORKeyStream(key, f.Nonce, ciphertext)
	if err != nil {
		return nil, nil, newErr(InvalidKey, "decrypting payload", err)
	}

	report := &models.ExtractReport{
		RecoveredBytes:  len(plaintext),
		ChannelBitFlips: dissent,
		Duration:        time.Since(start),
	}
	if dissent > usableLen/10 {
		report.AddFinding("high channel dissent, image may have been recompressed aggressively", "warning", 1.0)
	}
	return plaintext, report, nil
}

func touchedBlockSet(slots []blockSlot) map[[2]int]bool {
	set := make(map[[2]int]bool)
	for _, s := range slots {
		set[[2]int{s.bx, s.by}] = true
	}
	return set
}

// processBlocks fans out fn over the given blocks across n worker
// goroutines. Each block's own bit assignments are computed and written
// entirely within fn, so blocks are independent units of work.
func processBlocks(blocks map[[2]int]bool, n int, fn func(bx, by int)) error {
	type coord struct{ bx, by int }
	coords := make([]coord, 0, len(blocks))
	for k := range blocks {
		coords = append(coords, coord{bx: k[0], by: k[1]})
	}

	if n <= 1 || len(coords) <= 1 {
		for _, c := range coords {
			fn(c.bx, c.by)
		}
		return nil
	}

	jobs := make(chan coord)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range jobs {
				fn(c.bx, c.by)
			}
		}()
	}
	for _, c := range coords {
		jobs <- c
	}
	close(jobs)
	wg.Wait()
	return nil
}
