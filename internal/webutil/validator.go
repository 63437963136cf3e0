// internal/webutil/validator.go
package webutil

import (
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/locales/ja"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ja_translations "github.com/go-playground/validator/v10/translations/ja"
)

// Validator はアプリケーション全体で共有されるバリデータインスタンスです。
var Validator *validator.Validate

// Trans はエラーメッセージを翻訳するためのトランスレータです。
var Trans ut.Translator

var fieldNameTranslations = map[string]string{
	"category_ids":   "カテゴリ",
	"question_count": "問題数",
	"answer":         "回答",
}

func translatedField(fe validator.FieldError) string {
	if name, ok := fieldNameTranslations[fe.Field()]; ok {
		return name
	}
	// dive したスライス要素は category_ids[0] の形になる
	if i := strings.IndexByte(fe.Field(), '['); i > 0 {
		if name, ok := fieldNameTranslations[fe.Field()[:i]]; ok {
			return name
		}
	}
	return fe.Field()
}

func init() {
	Validator = validator.New()

	// JSONタグからフィールド名を取得する
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	japanese := ja.New()
	uni := ut.New(japanese, japanese)
	var found bool
	Trans, found = uni.GetTranslator("ja")
	if !found {
		log.Fatal("translator not found")
	}

	if err := ja_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}

	registerTranslation("required", "{0}は必須項目です。", nil)
	registerTranslation("gt", "{0}は{1}より大きい値を指定してください。", nil)
	// min / max はスライスなら件数、それ以外は値として読む
	registerTranslation("min", "{0}は{1}以上で指定してください。", map[reflect.Kind]string{
		reflect.Slice:  "{0}は{1}件以上選択してください。",
		reflect.String: "{0}は{1}文字以上で入力してください。",
	})
	registerTranslation("max", "{0}は{1}以下で指定してください。", map[reflect.Kind]string{
		reflect.Slice:  "{0}は{1}件以下で選択してください。",
		reflect.String: "{0}は{1}文字以下で入力してください。",
	})
}

// registerTranslation は tag のメッセージを上書きします。byKind があればフィールドの種類で切り替えます。
func registerTranslation(tag, msg string, byKind map[reflect.Kind]string) {
	err := Validator.RegisterTranslation(tag, Trans, func(trans ut.Translator) error {
		if err := trans.Add(tag, msg, true); err != nil {
			return err
		}
		for kind, kindMsg := range byKind {
			if err := trans.Add(tag+"-"+kind.String(), kindMsg, true); err != nil {
				return err
			}
		}
		return nil
	}, func(trans ut.Translator, fe validator.FieldError) string {
		key := tag
		if _, ok := byKind[fe.Kind()]; ok {
			key = tag + "-" + fe.Kind().String()
		}
		t, err := trans.T(key, translatedField(fe), fe.Param())
		if err != nil {
			return fe.Error()
		}
		return t
	})
	if err != nil {
		log.Fatal(err)
	}
}
