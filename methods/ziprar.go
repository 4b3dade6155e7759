package methods

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/mholt/archiver/v3"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// Unzip 解压上传的矢量数据压缩包，返回解压目录
// 国产测量软件导出的压缩包常带GBK文件名，解压时统一转UTF-8
func Unzip(src string) (string, error) {
	ext := filepath.Ext(src)
	switch strings.ToLower(ext) {
	case ".zip":
		return UnzipZip(src)
	case ".rar":
		return UnzipRar(src)
	default:
		return "", errors.New("Unsupported file format")
	}
}

func unpackDir(src string) string {
	dirpath, _ := filepath.Split(src)
	fileName := filepath.Base(src)
	fileExt := filepath.Ext(src)
	return filepath.Join(dirpath, fileName[0:len(fileName)-len(fileExt)])
}

func UnzipZip(src string) (string, error) {
	unpath := unpackDir(src)
	if _, err := os.Stat(unpath); os.IsNotExist(err) {
		if err := os.Mkdir(unpath, os.ModePerm); err != nil {
			return "", err
		}
	}

	reader, err := zip.OpenReader(src)
	if err != nil {
		return "", err
	}
	defer reader.Close()

	for _, file := range reader.File {
		if err := extractFile(file, unpath); err != nil {
			return "", err
		}
	}
	return unpath, nil
}

func extractFile(zf *zip.File, dest string) error {
	name := zf.Name
	if zf.NonUTF8 || !utf8.ValidString(name) {
		if decoded, err := gbkToUtf8(name); err == nil {
			name = decoded
		}
	}
	fpath := filepath.Join(dest, name)

	// 防止解压到目标目录之外
	if !strings.HasPrefix(fpath, filepath.Clean(dest)+string(os.PathSeparator)) {
		return fmt.Errorf("%s: illegal file path", fpath)
	}

	if zf.FileInfo().IsDir() {
		return os.MkdirAll(fpath, os.ModePerm)
	}

	if err := os.MkdirAll(filepath.Dir(fpath), os.ModePerm); err != nil {
		return err
	}
	outFile, err := os.OpenFile(fpath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, zf.Mode())
	if err != nil {
		return err
	}
	rc, err := zf.Open()
	if err != nil {
		outFile.Close()
		return err
	}
	_, err = io.Copy(outFile, rc)
	rc.Close()
	outFile.Close()
	return err
}

func UnzipRar(src string) (string, error) {
	unpath := unpackDir(src)
	os.Mkdir(unpath, os.ModePerm)
	err := archiver.Unarchive(src, unpath)
	return unpath, err
}

func gbkToUtf8(s string) (string, error) {
	reader := transform.NewReader(bytes.NewReader([]byte(s)), simplifiedchinese.GB18030.NewDecoder())
	d, e := io.ReadAll(reader)
	if e != nil {
		return "", e
	}
	return string(d), nil
}

// FindFileByExt 在目录下递归查找第一个指定扩展名的文件
func FindFileByExt(dir string, ext string) (string, bool) {
	var found string
	filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if found == "" && strings.EqualFold(filepath.Ext(path), ext) {
			found = path
		}
		return nil
	})
	return found, found != ""
}
