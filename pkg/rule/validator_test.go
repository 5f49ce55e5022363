package rule_test

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/yeisme/sitevault/pkg/rule"
)

type siteForm struct {
	Name string `rule:"required"`
	Slug string `rule:"required,slug"`
}

func TestEngine(t *testing.T) {
	if rule.Engine() == nil {
		t.Fatal("Engine() returned nil")
	}

	// 多次调用返回同一实例
	if rule.Engine() != rule.Engine() {
		t.Error("Engine() is not a singleton")
	}
}

func TestValidateStruct(t *testing.T) {
	cases := []struct {
		name string
		form siteForm
		ok   bool
	}{
		{"valid", siteForm{Name: "My Blog", Slug: "my-blog"}, true},
		{"missing name", siteForm{Name: "", Slug: "my-blog"}, false},
		{"uppercase slug", siteForm{Name: "My Blog", Slug: "My-Blog"}, false},
		{"missing slug", siteForm{Name: "My Blog", Slug: ""}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := rule.ValidateStruct(c.form)
			if c.ok && err != nil {
				t.Errorf("expected valid, got %v", err)
			}

			if !c.ok && err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestSlugRule(t *testing.T) {
	cases := []struct {
		slug string
		ok   bool
	}{
		{"blog", true},
		{"my-blog-2", true},
		{"a", true},
		{"-blog", false},
		{"blog-", false},
		{"my_blog", false},
		{"my--blog", true}, // 连续连字符允许，长度限制由字段规则负责
		{"", false},
	}

	for _, c := range cases {
		err := rule.ValidateVar(c.slug, "slug")
		if c.ok && err != nil {
			t.Errorf("slug %q: expected valid, got %v", c.slug, err)
		}

		if !c.ok && err == nil {
			t.Errorf("slug %q: expected error, got nil", c.slug)
		}
	}
}

func TestValidateVar(t *testing.T) {
	// 配置里 mq.common.url 等字段用 hostname_port 规则
	if err := rule.ValidateVar("localhost:4222", "hostname_port"); err != nil {
		t.Errorf("hostname_port rejected valid address: %v", err)
	}

	if err := rule.ValidateVar("not a host", "hostname_port"); err == nil {
		t.Error("hostname_port accepted garbage")
	}
}

func TestRegisterValidation(t *testing.T) {
	// 自定义规则：环境变量名须为大写加下划线
	err := rule.RegisterValidation("env_key", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return false
		}

		return s == strings.ToUpper(s) && !strings.ContainsAny(s, " -")
	})
	if err != nil {
		t.Fatalf("RegisterValidation: %v", err)
	}

	if err := rule.ValidateVar("API_BASE_URL", "env_key"); err != nil {
		t.Errorf("env_key rejected valid key: %v", err)
	}

	if err := rule.ValidateVar("api-base-url", "env_key"); err == nil {
		t.Error("env_key accepted lowercase key")
	}
}

func TestRegisterAlias(t *testing.T) {
	rule.RegisterAlias("site_name", "required,min=1,max=100")

	if err := rule.ValidateVar("My Blog", "site_name"); err != nil {
		t.Errorf("site_name rejected valid name: %v", err)
	}

	if err := rule.ValidateVar("", "site_name"); err == nil {
		t.Error("site_name accepted empty name")
	}
}
