package utils

import (
	"bytes"
	"fmt"
	"image/png"
	"strings"

	"github.com/skip2/go-qrcode"
)

// GenerateQRCode tạo QR code và trả về bytes PNG
func GenerateQRCode(content string, size int) ([]byte, error) {
	qr, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	err = png.Encode(buf, qr.Image(size))
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ViewerURL là đường dẫn trang chọn ghế của một sơ đồ theo slug.
func ViewerURL(base, slug string) string {
	return fmt.Sprintf("%s/so-do/%s", strings.TrimRight(base, "/"), slug)
}
