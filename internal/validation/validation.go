/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package validation checks user input from the entry and edit forms and renders Japanese
// per-field messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/locales/ja"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	jatranslations "github.com/go-playground/validator/v10/translations/ja"
)

// Error carries one message per invalid field, keyed by the field's json name.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return "validation failed: " + strings.Join(msgs, " ")
}

// Message returns the message for field or "".
func (e *Error) Message(field string) string {
	if e == nil {
		return ""
	}
	return e.Fields[field]
}

var fieldNames = map[string]string{
	"word_name": "単語名",
	"yomi":      "読み",
	"explain":   "解説",
	"tag":       "タグ",
	"category":  "カテゴリ",
	"maker":     "メーカー",
}

// FieldLabel returns the Japanese label for a json field name.
func FieldLabel(field string) string {
	if l, ok := fieldNames[field]; ok {
		return l
	}
	return field
}

var (
	once     sync.Once
	validate *validator.Validate
	trans    ut.Translator
	initErr  error
)

func setup() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	jp := ja.New()
	uni := ut.New(jp, jp)
	var found bool
	trans, found = uni.GetTranslator("ja")
	if !found {
		initErr = errors.New("ja translator not found")
		return
	}
	if err := jatranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		initErr = fmt.Errorf("register ja translations: %w", err)
		return
	}
	override := func(tag, msg string) {
		if initErr != nil {
			return
		}
		initErr = validate.RegisterTranslation(tag, trans, func(t ut.Translator) error {
			return t.Add(tag, msg, true)
		}, func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, FieldLabel(fe.Field()), fe.Param())
			return s
		})
	}
	override("required", "{0}は必須項目です。")
	override("max", "{0}は{1}文字以下で入力してください。")
}

// Struct validates v using its validate tags. It returns nil, a *Error, or a plain error
// when v cannot be validated at all.
func Struct(v any) error {
	once.Do(setup)
	if initErr != nil {
		return initErr
	}
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}
	out := &Error{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		if _, dup := out.Fields[fe.Field()]; dup {
			continue
		}
		out.Fields[fe.Field()] = fe.Translate(trans)
	}
	return out
}
