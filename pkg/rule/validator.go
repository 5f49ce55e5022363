// Package rule 封装 go-playground/validator，校验标签统一用 `rule`.
package rule

import (
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	inst *validator.Validate
	once sync.Once
)

// slug：小写字母数字开头结尾，中间允许连字符.长度上限由字段规则另行约束.
var slugPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// setup 尽量复用 gin binding 的引擎，让 ShouldBind 和手动校验走同一套规则.
func setup() {
	if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
		inst = engine
	} else {
		inst = validator.New()
	}

	inst.SetTagName("rule")

	_ = inst.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
}

// Engine 返回全局 validator，首次调用时初始化.
func Engine() *validator.Validate {
	once.Do(setup)

	return inst
}

// ValidateStruct 校验结构体的 rule 标签.
func ValidateStruct(s any) error {
	return Engine().Struct(s)
}

// ValidateVar 校验单个值，如 ValidateVar(email, "required,email").
func ValidateVar(field any, tag string) error {
	return Engine().Var(field, tag)
}

// RegisterValidation 注册自定义规则.
func RegisterValidation(tag string, fn validator.Func, opts ...bool) error {
	return Engine().RegisterValidation(tag, fn, opts...)
}

// RegisterAlias 注册规则别名.
func RegisterAlias(alias, rules string) {
	Engine().RegisterAlias(alias, rules)
}
