package inmemdb

import (
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

func (db *DB) CreateAdmin(adm Admin) Admin {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if adm.ID == 0 {
		adm.ID = len(db.admins) + 1
	}
	db.admins[adm.Mobile] = &adm
	return adm
}

func (db *DB) GetAdminByMobile(mobile string) (Admin, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()
	if adm, ok := db.admins[mobile]; ok {
		return *adm, nil
	}
	return Admin{}, ErrUnknownAdmin
}

// IssueOTP stores the hash of the login code sent to mobile, replacing any previous one.
func (db *DB) IssueOTP(mobile, code string) error {
	if _, err := db.GetAdminByMobile(mobile); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), db.bcryptCost)
	if err != nil {
		return errors.Wrap(err, "hashing otp")
	}
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.otps[mobile] = hash
	return nil
}

// CheckOTP consumes the login code of mobile.
func (db *DB) CheckOTP(mobile, code string) (Admin, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	adm, ok := db.admins[mobile]
	if !ok {
		return Admin{}, ErrUnknownAdmin
	}
	hash, ok := db.otps[mobile]
	if !ok {
		return Admin{}, ErrInvalidOTP
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(code)); err != nil {
		return Admin{}, ErrInvalidOTP
	}
	delete(db.otps, mobile)
	return *adm, nil
}
