// Package praq implements a lossless compressor built around context-hash byte
// prediction ("LZP").
//
// A rolling hash of the bytes seen so far indexes a 1 MiB table holding, for
// each context, the byte that followed it last time. Whenever the table's
// guess is right the encoder only has to say so; whenever it's wrong it has to
// send the actual byte. The two modes differ in how they say it:
//
//   - [ModePPP] works in 32 KiB blocks. Each block is a bitmap with one bit per
//     byte (1 = predicted) followed by the bytes that weren't predicted. This
//     is fast and works well as a preprocessor for a stronger compressor.
//   - [ModeVLC] writes one continuous stream of Golomb codes: the length of
//     each run of correct predictions, and for each miss, its rank in an
//     adaptive move-to-front list.
//
// Every stream starts with a fixed 24-byte [Header]:
//
//	offset  size  field
//	     0     8  magic "PRAQ6\0\0\0"
//	     8     8  number of full PPP blocks (little-endian)
//	    16     4  size of the final partial PPP block
//	    20     4  mode: 1 = PPP, 2 = VLC
//
// The PPP fields are zero for VLC streams. Since the PPP block counts aren't
// known until all the input has been read, [Compress] needs an
// [io.WriteSeeker] so it can go back and fill them in.
//
// Nothing about the adaptive state is ever transmitted. The decoder rebuilds
// the prediction table, move-to-front list and symbol frequencies from the
// bytes it has already reconstructed, exactly as the encoder built them.
//
// # Examples
//
// Round-trip a byte slice:
//
//	compressed, err := praq.CompressBytes(data, praq.ModeVLC, nil)
//	if err != nil {
//		return err
//	}
//	original, err := praq.DecompressBytes(compressed, nil)
//
// Compress one file into another:
//
//	stats, err := praq.Compress(inFile, outFile, praq.ModePPP, nil)
//	if err != nil {
//		return err
//	}
//	fmt.Printf("saved %.2f%%\n", stats.Ratio())
package praq
