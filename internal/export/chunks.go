package export

import "strings"

// chunkCapacityBytes bounds the size of one accumulation buffer. The bound
// caps transient string-concatenation memory; it never changes the output.
const chunkCapacityBytes = 64 * 1024

// chunkBuilder accumulates formatted fragments into bounded chunks. The
// final content is the ordered concatenation of all chunks.
type chunkBuilder struct {
	sealedChunks []string
	currentChunk strings.Builder
}

func (builder *chunkBuilder) write(fragment string) {
	builder.currentChunk.WriteString(fragment)
	if builder.currentChunk.Len() >= chunkCapacityBytes {
		builder.seal()
	}
}

func (builder *chunkBuilder) seal() {
	if builder.currentChunk.Len() == 0 {
		return
	}
	builder.sealedChunks = append(builder.sealedChunks, builder.currentChunk.String())
	builder.currentChunk.Reset()
}

func (builder *chunkBuilder) content() string {
	builder.seal()
	return strings.Join(builder.sealedChunks, "")
}
