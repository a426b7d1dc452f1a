// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/pdiddy/mdclip/internal/container"
)

const defaultImage = "pandoc/core:latest"

// ContainerConverter runs pandoc from a container image. The Markdown is
// piped to the container and the document is streamed back on stdout, so no
// volume mounts are needed.
type ContainerConverter struct {
	runtime container.Runtime
	image   string
}

// NewContainerConverter checks that image (default pandoc/core:latest) is
// present in rt before returning.
func NewContainerConverter(ctx context.Context, rt container.Runtime, image string) (*ContainerConverter, error) {
	if image == "" {
		image = defaultImage
	}
	if err := rt.ImageExists(ctx, image); err != nil {
		return nil, fmt.Errorf("pandoc image not available in %s: %w", rt.Name(), err)
	}
	return &ContainerConverter{runtime: rt, image: image}, nil
}

// Convert streams inputPath through the pandoc container into outputPath.
// A partially written output is removed on failure.
func (c *ContainerConverter) Convert(ctx context.Context, inputPath, outputPath string) (err error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", inputPath, err)
	}
	defer in.Close()

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outputPath, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", outputPath, cerr)
		}
		if err != nil {
			os.Remove(outputPath)
		}
	}()

	args := []string{"-f", "markdown", "-t", "docx", "-o", "-"}
	var stderr bytes.Buffer
	if err := c.runtime.Run(ctx, c.image, args, in, out, &stderr); err != nil {
		return processError(ctx, c.runtime.Name(), err, stderr.String())
	}
	return nil
}
