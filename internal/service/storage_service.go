package service

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"pixel-gallery-server/internal/config"
	"strings"

	"github.com/google/uuid"
)

// 文件存储管理：把照片 ID 映射为确定性的存储文件名，
// 在配置的上传目录内完成写入/删除/查询。

func uploadRoot() string {
	root := config.Get().Upload.Path
	if root == "" {
		root = "uploads"
	}
	return root
}

// StorageFilename 根据照片 ID 与客户端原始文件名推导存储文件名。
// 规则：`cover_<photoID>` 加上原始文件名最后一个 "." 起的扩展名（若有）。
// 同一照片 ID 重复存储会落在同一路径上原地覆盖；
// 扩展名变化时旧文件不会自动清理，由调用方先删除旧文件。
func StorageFilename(photoID uuid.UUID, originalFilename string) string {
	base := filepath.Base(originalFilename)
	ext := ""
	if idx := strings.LastIndex(base, "."); idx >= 0 {
		ext = base[idx:]
	}
	return "cover_" + photoID.String() + ext
}

// StoreFile 把上传的文件写入存储目录，返回存储文件名。
// 目录不存在时自动创建；目标文件已存在时直接覆盖。
// 任何 I/O 失败都会返回错误，由调用方决定是否回滚数据库记录。
func StoreFile(file *multipart.FileHeader, photoID uuid.UUID) (string, error) {
	root := uploadRoot()
	if err := os.MkdirAll(root, 0755); err != nil {
		return "", errors.New("系统错误: 无法创建存储目录")
	}

	filename := StorageFilename(photoID, file.Filename)
	dst := filepath.Join(root, filename)

	src, err := file.Open()
	if err != nil {
		return "", errors.New("无法读取上传文件")
	}
	defer func() { _ = src.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return "", errors.New("系统错误: 无法创建文件")
	}
	defer func() { _ = out.Close() }()

	if _, err = io.Copy(out, src); err != nil {
		return "", errors.New("文件保存失败")
	}

	return filename, nil
}

// DeleteFile 删除存储文件。
// 文件不存在返回 (false, nil)，不视为错误；其余 I/O 失败返回错误。
func DeleteFile(filename string) (bool, error) {
	if err := os.Remove(ResolveFile(filename)); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// FileExists 检查存储文件是否存在
func FileExists(filename string) bool {
	info, err := os.Stat(ResolveFile(filename))
	return err == nil && !info.IsDir()
}

// ResolveFile 返回存储文件的磁盘路径
func ResolveFile(filename string) string {
	return filepath.Join(uploadRoot(), filepath.Base(filename))
}
