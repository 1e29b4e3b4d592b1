package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/textproto"
	"path"
	"time"

	"github.com/jlaffaye/ftp"
)

// FTPConfig holds the connection settings of the FTP backend.
type FTPConfig struct {
	Addr     string
	User     string
	Password string
	BaseDir  string
	Timeout  time.Duration
}

// FTP stores blobs on a remote FTP server. Every operation uses its own
// connection; FTP control connections are not safe for concurrent use.
type FTP struct {
	cfg FTPConfig
	log *slog.Logger
}

func NewFTP(cfg FTPConfig, logger *slog.Logger) *FTP {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &FTP{cfg: cfg, log: logger.With("adapter", "blobstore.ftp")}
}

func (s *FTP) connect(ctx context.Context) (*ftp.ServerConn, error) {
	conn, err := ftp.Dial(s.cfg.Addr,
		ftp.DialWithTimeout(s.cfg.Timeout),
		ftp.DialWithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("ftp dial: %w", err)
	}
	if err := conn.Login(s.cfg.User, s.cfg.Password); err != nil {
		_ = conn.Quit()
		return nil, fmt.Errorf("ftp login: %w", err)
	}
	return conn, nil
}

func (s *FTP) remote(key string) (string, error) {
	clean, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	return path.Join(s.cfg.BaseDir, clean), nil
}

func (s *FTP) Put(ctx context.Context, key string, r io.Reader) error {
	remote, err := s.remote(key)
	if err != nil {
		return err
	}
	conn, err := s.connect(ctx)
	if err != nil {
		return fmt.Errorf("blobstore.FTP.Put: %w", err)
	}
	defer conn.Quit()

	// MakeDir fails when the directory exists; Stor reports the real problem.
	dir := path.Dir(remote)
	_ = conn.MakeDir(path.Dir(dir))
	_ = conn.MakeDir(dir)

	if err := conn.Stor(remote, r); err != nil {
		return fmt.Errorf("blobstore.FTP.Put: %w", err)
	}
	return nil
}

func (s *FTP) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	remote, err := s.remote(key)
	if err != nil {
		return nil, err
	}
	conn, err := s.connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("blobstore.FTP.Open: %w", err)
	}
	resp, err := conn.Retr(remote)
	if err != nil {
		_ = conn.Quit()
		if isUnavailable(err) {
			return nil, notFound(key)
		}
		return nil, fmt.Errorf("blobstore.FTP.Open: %w", err)
	}
	return &ftpReader{resp: resp, conn: conn}, nil
}

func (s *FTP) Delete(ctx context.Context, key string) error {
	remote, err := s.remote(key)
	if err != nil {
		return err
	}
	conn, err := s.connect(ctx)
	if err != nil {
		return fmt.Errorf("blobstore.FTP.Delete: %w", err)
	}
	defer conn.Quit()

	if err := conn.Delete(remote); err != nil {
		if isUnavailable(err) {
			s.log.DebugContext(ctx, "blob already gone", slog.String("key", key))
			return nil
		}
		return fmt.Errorf("blobstore.FTP.Delete: %w", err)
	}
	return nil
}

func isUnavailable(err error) bool {
	var tpErr *textproto.Error
	return errors.As(err, &tpErr) && tpErr.Code == ftp.StatusFileUnavailable
}

// ftpReader releases the data and control connections together.
type ftpReader struct {
	resp *ftp.Response
	conn *ftp.ServerConn
}

func (r *ftpReader) Read(p []byte) (int, error) { return r.resp.Read(p) }

func (r *ftpReader) Close() error {
	err := r.resp.Close()
	if qerr := r.conn.Quit(); err == nil {
		err = qerr
	}
	return err
}
