package service

import (
	"log"
	"mime/multipart"
	"pixel-gallery-server/internal/common"
	"pixel-gallery-server/internal/model"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// 照片的创建/换图/删除流程，负责协调数据库记录与磁盘文件。
// 数据库与文件系统之间没有跨系统事务，一致性靠补偿动作维持：
// 记录里 filename 非空意味着文件曾经写入成功。
//
// 同一照片 ID 的并发换图不做串行化，落盘与记录都是后写覆盖先写。

// PhotoForm 创建/编辑照片的表单字段
type PhotoForm struct {
	Title       string
	Category    string
	Description string
	Price       decimal.Decimal
}

func validatePhotoForm(form PhotoForm) error {
	if strings.TrimSpace(form.Title) == "" {
		return common.NewValidationError("标题不能为空")
	}
	if strings.TrimSpace(form.Category) == "" {
		return common.NewValidationError("分类不能为空")
	}
	if form.Price.IsNegative() {
		return common.NewValidationError("价格不能为负数")
	}
	return nil
}

func validateUploadFile(file *multipart.FileHeader) error {
	if file == nil || file.Size == 0 {
		return common.NewValidationError("请选择要上传的图片")
	}
	return nil
}

// ProcessPhotoCreate 创建照片。
// 流程：校验 → 创建记录（filename 为空）→ 写文件 → 回填文件名。
// 文件写入失败时删除刚创建的记录作为补偿，调用方看到的效果是
// 既没有记录也没有文件，创建整体等价于原子操作。
func ProcessPhotoCreate(userID uuid.UUID, form PhotoForm, file *multipart.FileHeader) (*model.Photo, error) {
	if err := validatePhotoForm(form); err != nil {
		return nil, err
	}
	if err := validateUploadFile(file); err != nil {
		return nil, err
	}

	photo := model.Photo{
		UserID:      userID,
		Title:       strings.TrimSpace(form.Title),
		Category:    strings.TrimSpace(form.Category),
		Description: form.Description,
		Price:       form.Price,
	}
	if err := CreatePhotoRecord(&photo); err != nil {
		log.Printf("Create photo record error: %v\n", err)
		return nil, common.NewInternalError("保存照片失败，请稍后重试")
	}

	filename, err := StoreFile(file, photo.ID)
	if err != nil {
		// 补偿动作：文件没写成，刚建的记录也要删掉
		if delErr := DeletePhotoRecord(photo.ID); delErr != nil {
			log.Printf("Rollback photo record error: %v\n", delErr)
		}
		return nil, common.NewInternalError(err.Error())
	}

	if err := UpdatePhotoFilename(photo.ID, filename); err != nil {
		log.Printf("Update photo filename error: %v\n", err)
		if removed, delErr := DeleteFile(filename); delErr != nil || !removed {
			log.Printf("Rollback stored file error: removed=%v err=%v\n", removed, delErr)
		}
		if delErr := DeletePhotoRecord(photo.ID); delErr != nil {
			log.Printf("Rollback photo record error: %v\n", delErr)
		}
		return nil, common.NewInternalError("保存照片失败，请稍后重试")
	}

	photo.Filename = &filename
	return &photo, nil
}

// ProcessPhotoReplaceImage 替换照片图片。
// 旧文件删除失败只记录日志不中断，新图优先；泄漏的旧文件可人工回收。
// 已知缺口：旧文件删除发生在新文件确认写入之前，
// 中途崩溃可能导致新旧文件都不存在而记录仍引用旧文件名。
func ProcessPhotoReplaceImage(photo *model.Photo, file *multipart.FileHeader) (string, error) {
	if err := validateUploadFile(file); err != nil {
		return "", err
	}

	if photo.Filename != nil {
		if _, err := DeleteFile(*photo.Filename); err != nil {
			log.Printf("Delete old photo file error: %v, filename: %s\n", err, *photo.Filename)
		}
	}

	filename, err := StoreFile(file, photo.ID)
	if err != nil {
		return "", common.NewInternalError(err.Error())
	}

	if err := UpdatePhotoFilename(photo.ID, filename); err != nil {
		log.Printf("Update photo filename error: %v\n", err)
		return "", common.NewInternalError("保存照片失败，请稍后重试")
	}

	photo.Filename = &filename
	return filename, nil
}

// ProcessPhotoDelete 删除照片。
// 记录不存在时为空操作（幂等）；文件删除尽力而为，失败不阻塞记录删除。
func ProcessPhotoDelete(id, userID uuid.UUID) error {
	photo := GetUserOwnedPhoto(id, userID)
	if photo == nil {
		return nil
	}

	if photo.Filename != nil {
		if _, err := DeleteFile(*photo.Filename); err != nil {
			log.Printf("Delete photo file error: %v, filename: %s\n", err, *photo.Filename)
		}
	}

	if err := DeletePhotoRecord(photo.ID); err != nil {
		log.Printf("Delete photo record error: %v\n", err)
		return common.NewInternalError("删除失败，请稍后重试")
	}
	return nil
}
