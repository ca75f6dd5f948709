package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("record not found")

// translate 将gorm的未找到错误统一为ErrNotFound
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Page 分页参数
type Page struct {
	Page   int    // 页码，从1开始
	Size   int    // 每页数量
	Search string // 模糊匹配关键字（可选）
}

// MaxPage 页码上限，避免偏移量溢出
const MaxPage = 100000

// Offset 计算偏移量
func (p Page) Offset() int {
	page := min(max(p.Page, 1), MaxPage)
	return (page - 1) * p.Size
}

// likeEscape LIKE 转义字符；反斜杠在 mysql 与 postgres 字面量中含义不同，故用 !
const likeEscape = "!"

// likeClause 单列匹配条件
func likeClause(column string) string {
	return "LOWER(" + column + ") LIKE ? ESCAPE '" + likeEscape + "'"
}

var likeEscaper = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")

// likePattern 构建LIKE匹配串（小写），关键字中的 % 与 _ 按字面匹配
func likePattern(search string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(search))) + "%"
}
